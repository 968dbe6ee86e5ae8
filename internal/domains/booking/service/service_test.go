package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lodgehub/config"
	"lodgehub/infras/otel/mocks"
	bookingMocks "lodgehub/internal/domains/booking/mocks"
	"lodgehub/internal/domains/booking/model"
	"lodgehub/internal/domains/booking/model/dto"
	"lodgehub/internal/domains/booking/service"
	"lodgehub/internal/domains/booking/validation"
	lodgeModel "lodgehub/internal/domains/lodge/model"
	lodgeMocks "lodgehub/internal/domains/lodge/mocks"
	roomModel "lodgehub/internal/domains/room/model"
	roomMocks "lodgehub/internal/domains/room/mocks"
	cacheMocks "lodgehub/shared/cache/mocks"
	"lodgehub/shared/constant"
	gDto "lodgehub/shared/dto"
	gModel "lodgehub/shared/model"
	"lodgehub/shared/timezone"
)

type serviceMocks struct {
	repo      *bookingMocks.MockBooking
	roomRepo  *roomMocks.MockRoom
	lodgeRepo *lodgeMocks.MockLodge
	cache     *cacheMocks.MockRedisCache
}

func newService(t *testing.T) (service.Booking, serviceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := serviceMocks{
		repo:      bookingMocks.NewMockBooking(ctrl),
		roomRepo:  roomMocks.NewMockRoom(ctrl),
		lodgeRepo: lodgeMocks.NewMockLodge(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Booking.TaxRate = 0.15
	cfg.Kafka.Enable = false

	// Cache writes and invalidations run on detached goroutines.
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(m.repo, m.roomRepo, m.lodgeRepo, nil, cfg, m.cache, mocks.NewOtel())

	return svc, m
}

func adminCtx() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-id")
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)

	return ctx
}

func receptionistCtx(lodges ...string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "reception-id")
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleReceptionist)
	ctx = context.WithValue(ctx, constant.ContextKeyAssignedLodges, lodges)

	return ctx
}

func validCreateRequest() dto.CreateBookingRequest {
	checkIn := timezone.Now().AddDate(0, 0, 7)
	checkOut := checkIn.AddDate(0, 0, 3)

	return dto.CreateBookingRequest{
		GuestName:  "John Smith",
		GuestEmail: "john@example.com",
		GuestPhone: "+6281234567890",
		LodgeID:    "lodge-1",
		RoomID:     "room-1",
		CheckIn:    checkIn.Format(constant.DateOnlyFormat),
		CheckOut:   checkOut.Format(constant.DateOnlyFormat),
		Guests:     2,
		Adults:     2,
	}
}

func testLodge() lodgeModel.Lodge {
	return lodgeModel.Lodge{
		ID:   "lodge-1",
		Name: "Mountain Lodge",
	}
}

func testRoom() roomModel.Room {
	return roomModel.Room{
		ID:          "room-1",
		LodgeID:     "lodge-1",
		Name:        "Deluxe 101",
		Type:        constant.RoomTypeDeluxe,
		PriceNormal: decimal.NewFromInt(100),
		PriceBusy:   decimal.NewFromInt(150),
		PriceSlow:   decimal.NewFromInt(80),
		IsActive:    true,
	}
}

func pendingBooking() model.Booking {
	checkIn := timezone.Now().AddDate(0, 0, 7)
	checkOut := checkIn.AddDate(0, 0, 3)

	return model.Booking{
		ID:         "booking-1",
		GuestName:  "John Smith",
		GuestEmail: "john@example.com",
		GuestPhone: "+6281234567890",
		LodgeID:    "lodge-1",
		RoomID:     "room-1",
		RoomName:   "Deluxe 101",
		RoomType:   constant.RoomTypeDeluxe,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     2,
		Adults:     2,
		Status:     constant.BookingStatusPending,
		Amount:     decimal.NewFromFloat(345),
		Balance:    decimal.NewFromFloat(345),
		RoomRate:   decimal.NewFromInt(100),
		Currency:   constant.DefaultCurrency,
		Metadata: gModel.Metadata{
			CreatedBy:  "admin-id",
			ModifiedBy: "admin-id",
		},
	}
}

func TestBookingService_Create(t *testing.T) {
	t.Run("successful creation prices the stay", func(t *testing.T) {
		svc, m := newService(t)

		m.lodgeRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testLodge(), nil)
		m.roomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testRoom(), nil)
		m.repo.EXPECT().
			InsertGuarded(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking) ([]model.Booking, error) {
				// 3 nights at 100, 15% tax, no discounts.
				assert.True(t, booking.Amount.Equal(decimal.NewFromFloat(345)), "amount = %s", booking.Amount)
				assert.True(t, booking.Taxes.Equal(decimal.NewFromFloat(45)), "taxes = %s", booking.Taxes)
				assert.True(t, booking.Balance.Equal(decimal.NewFromFloat(345)), "balance = %s", booking.Balance)
				assert.Equal(t, constant.BookingStatusPending, booking.Status)
				assert.Equal(t, "Mountain Lodge", booking.LodgeName)
				assert.Equal(t, "Deluxe 101", booking.RoomName)

				return nil, nil
			})

		res, err := svc.Create(adminCtx(), validCreateRequest())

		require.NoError(t, err)
		assert.Equal(t, "John Smith", res.GuestName)
		assert.True(t, res.Amount.Equal(decimal.NewFromFloat(345)))
	})

	t.Run("busy season uses the busy rate", func(t *testing.T) {
		svc, m := newService(t)

		req := validCreateRequest()
		req.Season = constant.SeasonBusy

		m.lodgeRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testLodge(), nil)
		m.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testRoom(), nil)
		m.repo.EXPECT().
			InsertGuarded(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking) ([]model.Booking, error) {
				assert.True(t, booking.RoomRate.Equal(decimal.NewFromInt(150)))

				return nil, nil
			})

		_, err := svc.Create(adminCtx(), req)

		require.NoError(t, err)
	})

	t.Run("lodge out of scope is forbidden", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.Create(receptionistCtx("lodge-2"), validCreateRequest())

		require.Error(t, err)
	})

	t.Run("unknown lodge rejected", func(t *testing.T) {
		svc, m := newService(t)

		m.lodgeRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(lodgeModel.Lodge{}, nil)

		_, err := svc.Create(adminCtx(), validCreateRequest())

		require.Error(t, err)
	})

	t.Run("inactive room rejected", func(t *testing.T) {
		svc, m := newService(t)

		room := testRoom()
		room.IsActive = false

		m.lodgeRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testLodge(), nil)
		m.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)

		_, err := svc.Create(adminCtx(), validCreateRequest())

		require.Error(t, err)
	})

	t.Run("overlapping booking returns conflict details", func(t *testing.T) {
		svc, m := newService(t)

		existing := pendingBooking()
		existing.ID = "other-booking"
		existing.GuestName = "Jane Doe"

		m.lodgeRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testLodge(), nil)
		m.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testRoom(), nil)
		m.repo.EXPECT().
			InsertGuarded(gomock.Any(), gomock.Any()).
			Return([]model.Booking{existing}, nil)

		_, err := svc.Create(adminCtx(), validCreateRequest())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Jane Doe")
	})

	t.Run("repository error", func(t *testing.T) {
		svc, m := newService(t)

		m.lodgeRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testLodge(), nil)
		m.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testRoom(), nil)
		m.repo.EXPECT().
			InsertGuarded(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("database error"))

		_, err := svc.Create(adminCtx(), validCreateRequest())

		require.Error(t, err)
	})
}

func TestBookingService_GetAll(t *testing.T) {
	t.Run("cache miss loads from repository", func(t *testing.T) {
		svc, m := newService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss")).
			Times(2) // list key and count key both miss
		m.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(1, nil)
		m.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Booking{pendingBooking()}, nil)

		res, err := svc.GetAll(adminCtx(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

		require.NoError(t, err)
		assert.Len(t, res.Bookings, 1)
		assert.Equal(t, 1, res.TotalData)
	})

	t.Run("receptionist queries are scoped to assigned lodges", func(t *testing.T) {
		svc, m := newService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss")).
			Times(2)
		m.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				assert.NotEmpty(t, filter.Filters)

				return 0, nil
			})
		m.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Booking{}, nil)

		_, err := svc.GetAll(receptionistCtx("lodge-1"), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

		require.NoError(t, err)
	})
}

func TestBookingService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc, m := newService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))
		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking(), nil)

		res, err := svc.Get(adminCtx(), "booking-1")

		require.NoError(t, err)
		assert.Equal(t, "booking-1", res.ID)
	})

	t.Run("not found", func(t *testing.T) {
		svc, m := newService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))
		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{}, nil)

		_, err := svc.Get(adminCtx(), "missing")

		require.Error(t, err)
	})

	t.Run("lodge out of scope is forbidden", func(t *testing.T) {
		svc, m := newService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))
		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking(), nil)

		_, err := svc.Get(receptionistCtx("lodge-2"), "booking-1")

		require.Error(t, err)
	})
}

func TestBookingService_Update(t *testing.T) {
	t.Run("guest-only edit skips conflict check", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking(), nil)
		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.Update(adminCtx(), dto.UpdateBookingRequest{GuestName: "Jane Smith"}, "booking-1")

		require.NoError(t, err)
	})

	t.Run("date change reprices and re-checks conflicts", func(t *testing.T) {
		svc, m := newService(t)

		newCheckOut := timezone.Now().AddDate(0, 0, 12).Format(constant.DateOnlyFormat)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking(), nil)
		m.roomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testRoom(), nil)
		m.repo.EXPECT().
			UpdateGuarded(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking, fields map[string]any) ([]model.Booking, error) {
				// 5 nights at 100 plus 15% tax.
				assert.True(t, booking.Amount.Equal(decimal.NewFromFloat(575)), "amount = %s", booking.Amount)
				assert.Contains(t, fields, model.FieldCheckOut)

				return nil, nil
			})

		err := svc.Update(adminCtx(), dto.UpdateBookingRequest{CheckOut: newCheckOut}, "booking-1")

		require.NoError(t, err)
	})

	t.Run("date change conflict rejected", func(t *testing.T) {
		svc, m := newService(t)

		newCheckOut := timezone.Now().AddDate(0, 0, 12).Format(constant.DateOnlyFormat)

		other := pendingBooking()
		other.ID = "other-booking"
		other.GuestName = "Jane Doe"

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking(), nil)
		m.roomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testRoom(), nil)
		m.repo.EXPECT().
			UpdateGuarded(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Booking{other}, nil)

		err := svc.Update(adminCtx(), dto.UpdateBookingRequest{CheckOut: newCheckOut}, "booking-1")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Jane Doe")
	})

	t.Run("deposit update recomputes the balance", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking(), nil)
		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				balance, ok := fields[model.FieldBalance].(decimal.Decimal)
				require.True(t, ok)
				assert.True(t, balance.Equal(decimal.NewFromFloat(245)), "balance = %s", balance)

				deposit, ok := fields[model.FieldDeposit].(decimal.Decimal)
				require.True(t, ok)
				assert.True(t, deposit.Equal(decimal.NewFromFloat(100)))

				return nil
			})

		err := svc.Update(adminCtx(), dto.UpdateBookingRequest{Deposit: "100"}, "booking-1")

		require.NoError(t, err)
	})

	t.Run("empty request rejected", func(t *testing.T) {
		svc, _ := newService(t)

		err := svc.Update(adminCtx(), dto.UpdateBookingRequest{}, "booking-1")

		require.Error(t, err)
	})
}

func TestBookingService_UpdateStatus(t *testing.T) {
	t.Run("pending to confirmed", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking(), nil)
		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, constant.BookingStatusConfirmed, fields[model.FieldStatus])

				return nil
			})

		err := svc.UpdateStatus(adminCtx(), "booking-1", dto.UpdateStatusRequest{Status: constant.BookingStatusConfirmed})

		require.NoError(t, err)
	})

	t.Run("check-out stamps payment as paid", func(t *testing.T) {
		svc, m := newService(t)

		booking := pendingBooking()
		booking.Status = constant.BookingStatusCheckedIn

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)
		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, constant.PaymentStatusPaid, fields[model.FieldPaymentStatus])
				assert.Contains(t, fields, model.FieldCheckOutTime)

				return nil
			})

		err := svc.UpdateStatus(adminCtx(), "booking-1", dto.UpdateStatusRequest{Status: constant.BookingStatusCheckedOut})

		require.NoError(t, err)
	})

	t.Run("invalid transition rejected", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking(), nil)

		err := svc.UpdateStatus(adminCtx(), "booking-1", dto.UpdateStatusRequest{Status: constant.BookingStatusCheckedOut})

		require.Error(t, err)
	})
}

func TestBookingService_Cancel(t *testing.T) {
	t.Run("cancel pending booking", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking(), nil)
		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, constant.BookingStatusCancelled, fields[model.FieldStatus])
				assert.Equal(t, "change of plans", fields[model.FieldCancellationReason])

				return nil
			})

		warnings, err := svc.Cancel(adminCtx(), "booking-1", dto.CancelBookingRequest{Reason: "change of plans"})

		require.NoError(t, err)
		assert.Empty(t, warnings)
	})

	t.Run("late cancellation of confirmed booking returns a warning", func(t *testing.T) {
		svc, m := newService(t)

		booking := pendingBooking()
		booking.Status = constant.BookingStatusConfirmed
		booking.CheckIn = timezone.Now().Add(2 * time.Hour)
		booking.CheckOut = booking.CheckIn.AddDate(0, 0, 2)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)
		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		warnings, err := svc.Cancel(adminCtx(), "booking-1", dto.CancelBookingRequest{})

		require.NoError(t, err)
		assert.Contains(t, warnings, validation.KeyDeadline)
	})

	t.Run("already cancelled rejected", func(t *testing.T) {
		svc, m := newService(t)

		booking := pendingBooking()
		booking.Status = constant.BookingStatusCancelled

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		_, err := svc.Cancel(adminCtx(), "booking-1", dto.CancelBookingRequest{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "already cancelled")
	})

	t.Run("completed booking rejected", func(t *testing.T) {
		svc, m := newService(t)

		booking := pendingBooking()
		booking.Status = constant.BookingStatusCheckedOut

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		_, err := svc.Cancel(adminCtx(), "booking-1", dto.CancelBookingRequest{})

		require.Error(t, err)
	})
}

func TestBookingService_RecordPayment(t *testing.T) {
	t.Run("partial payment", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking(), nil)
		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				balance, ok := fields[model.FieldBalance].(decimal.Decimal)
				require.True(t, ok)
				assert.True(t, balance.Equal(decimal.NewFromFloat(245)), "balance = %s", balance)
				assert.Equal(t, constant.PaymentStatusPartial, fields[model.FieldPaymentStatus])

				return nil
			})

		err := svc.RecordPayment(adminCtx(), "booking-1", dto.RecordPaymentRequest{Amount: "100", Method: "card"})

		require.NoError(t, err)
	})

	t.Run("full payment marks booking paid", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking(), nil)
		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, constant.PaymentStatusPaid, fields[model.FieldPaymentStatus])

				return nil
			})

		err := svc.RecordPayment(adminCtx(), "booking-1", dto.RecordPaymentRequest{Amount: "345", Method: "cash"})

		require.NoError(t, err)
	})

	t.Run("payment exceeding balance rejected", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking(), nil)

		err := svc.RecordPayment(adminCtx(), "booking-1", dto.RecordPaymentRequest{Amount: "400", Method: "cash"})

		require.Error(t, err)
	})

	t.Run("invalid amount rejected", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking(), nil)

		err := svc.RecordPayment(adminCtx(), "booking-1", dto.RecordPaymentRequest{Amount: "abc", Method: "cash"})

		require.Error(t, err)
	})
}

func TestBookingService_Stats(t *testing.T) {
	t.Run("global stats for admin", func(t *testing.T) {
		svc, m := newService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))
		m.repo.EXPECT().
			Stats(gomock.Any(), gomock.Any()).
			Return(model.Stats{
				Total:          10,
				Confirmed:      4,
				TodayCheckIns:  2,
				TodayCheckOuts: 1,
				TotalRevenue:   decimal.NewFromInt(5000),
			}, nil)

		res, err := svc.Stats(adminCtx(), "")

		require.NoError(t, err)
		assert.Equal(t, 10, res.Total)
		assert.Equal(t, 2, res.TodayCheckIns)
		assert.Equal(t, 1, res.TodayCheckOuts)
		assert.True(t, res.TotalRevenue.Equal(decimal.NewFromInt(5000)))
	})

	t.Run("stats for unassigned lodge forbidden", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.Stats(receptionistCtx("lodge-1"), "lodge-2")

		require.Error(t, err)
	})
}
