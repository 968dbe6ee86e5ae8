package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"lodgehub/config"
	"lodgehub/infras/kafka"
	"lodgehub/infras/otel"
	"lodgehub/internal/domains/booking/model"
	"lodgehub/internal/domains/booking/model/dto"
	"lodgehub/internal/domains/booking/pricing"
	"lodgehub/internal/domains/booking/repository"
	"lodgehub/internal/domains/booking/validation"
	lodgeModel "lodgehub/internal/domains/lodge/model"
	lodgeRepo "lodgehub/internal/domains/lodge/repository"
	roomModel "lodgehub/internal/domains/room/model"
	roomRepo "lodgehub/internal/domains/room/repository"
	"lodgehub/permissions"
	"lodgehub/shared"
	"lodgehub/shared/cache"
	"lodgehub/shared/constant"
	gDto "lodgehub/shared/dto"
	"lodgehub/shared/failure"
	"lodgehub/shared/timezone"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
	cacheStatsBooking  = "booking:stats"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error
	UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) error
	Cancel(ctx context.Context, id string, req dto.CancelBookingRequest) (warnings map[string]string, err error)
	RecordPayment(ctx context.Context, id string, req dto.RecordPaymentRequest) error
	Stats(ctx context.Context, lodgeID string) (dto.StatsResponse, error)
}

type serviceImpl struct {
	repo      repository.Booking
	roomRepo  roomRepo.Room
	lodgeRepo lodgeRepo.Lodge
	kafka     kafka.Client
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(repo repository.Booking, roomRepo roomRepo.Room, lodgeRepo lodgeRepo.Lodge, kafkaClient kafka.Client, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:      repo,
		roomRepo:  roomRepo,
		lodgeRepo: lodgeRepo,
		kafka:     kafkaClient,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	assignedLodges, _ := ctx.Value(constant.ContextKeyAssignedLodges).([]string)

	if !permissions.CanAccessLodge(role, assignedLodges, req.LodgeID) {
		return res, failure.ResourceRestrictedError // nolint:wrapcheck
	}

	booking, err := req.ToModel(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid booking request: %v", err)) // nolint:wrapcheck
	}

	lodge, err := s.lodgeRepo.Get(ctx, shared.FilterByID(req.LodgeID, lodgeModel.FieldID, lodgeModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get lodge for booking")

		return res, fmt.Errorf("failed to get lodge for booking: %w", err)
	}

	if lodge.ID == constant.Empty {
		return res, failure.BadRequestFromString("lodge does not exist") // nolint:wrapcheck
	}

	room, err := s.roomForBooking(ctx, req.RoomID, req.LodgeID)
	if err != nil {
		return res, err
	}

	booking.LodgeName = lodge.Name
	booking.RoomName = room.Name
	booking.RoomType = room.Type
	booking.RoomRate = room.RateFor(req.Season)

	s.price(&booking)

	if fieldErrs := validation.Fields(booking, timezone.Now()); len(fieldErrs) > 0 {
		return res, failure.FromFields(fieldErrs) // nolint:wrapcheck
	}

	conflicts, err := s.repo.InsertGuarded(ctx, booking)
	if err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	if conflictErrs := validation.Conflicts(booking, conflicts, constant.Empty); len(conflictErrs) > 0 {
		return res, failure.FromFields(conflictErrs) // nolint:wrapcheck
	}

	s.publishEvent(ctx, booking, constant.Empty)
	s.invalidateListCaches(ctx)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter = s.scopeFilter(ctx, filter)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	assignedLodges, _ := ctx.Value(constant.ContextKeyAssignedLodges).([]string)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		if !permissions.CanAccessLodge(role, assignedLodges, res.LodgeID) {
			return dto.BookingResponse{}, failure.ResourceRestrictedError // nolint:wrapcheck
		}

		return res, nil
	}

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateBookingRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}

	stayChanged, err := req.Apply(&booking)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking update")

		return failure.BadRequestFromString(fmt.Sprintf("invalid booking update: %v", err)) // nolint:wrapcheck
	}

	if stayChanged {
		room, roomErr := s.roomForBooking(ctx, booking.RoomID, booking.LodgeID)
		if roomErr != nil {
			return roomErr
		}

		booking.RoomName = room.Name
		booking.RoomType = room.Type
		booking.RoomRate = room.RateFor(constant.SeasonNormal)

		s.price(&booking)
	}

	booking.ModifiedAt = timezone.Now()
	booking.ModifiedBy = user

	if fieldErrs := validation.Fields(booking, timezone.Now()); len(fieldErrs) > 0 {
		return failure.FromFields(fieldErrs) // nolint:wrapcheck
	}

	fields := updatableFields(booking)

	if stayChanged {
		conflicts, guardErr := s.repo.UpdateGuarded(ctx, booking, fields)
		if guardErr != nil {
			log.Error().Err(guardErr).Msg("failed to update booking")

			return fmt.Errorf("failed to update booking: %w", guardErr)
		}

		if conflictErrs := validation.Conflicts(booking, conflicts, booking.ID); len(conflictErrs) > 0 {
			return failure.FromFields(conflictErrs) // nolint:wrapcheck
		}
	} else {
		if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			log.Error().Err(err).Msg("failed to update booking")

			return fmt.Errorf("failed to update booking: %w", err)
		}
	}

	s.invalidateBookingCaches(ctx, id)

	return nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}

	previous := booking.Status

	fields, err := booking.Transition(req.Status, user, timezone.Now())
	if err != nil {
		return err // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	s.publishEvent(ctx, booking, previous)
	s.invalidateBookingCaches(ctx, id)

	return nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string, req dto.CancelBookingRequest) (warnings map[string]string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	errs := validation.Cancellation(booking, req.Reason, timezone.Now())

	warnings = map[string]string{}
	if deadlineMsg, ok := errs[validation.KeyDeadline]; ok {
		warnings[validation.KeyDeadline] = deadlineMsg
		delete(errs, validation.KeyDeadline)
	}

	if len(errs) > 0 {
		return nil, failure.FromFields(errs) // nolint:wrapcheck
	}

	previous := booking.Status

	fields, err := booking.Transition(constant.BookingStatusCancelled, user, timezone.Now())
	if err != nil {
		return nil, err // nolint:wrapcheck
	}

	booking.CancellationReason = req.Reason
	fields[model.FieldCancellationReason] = req.Reason

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to cancel booking")

		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}

	s.publishEvent(ctx, booking, previous)
	s.invalidateBookingCaches(ctx, id)

	return warnings, nil
}

func (s *serviceImpl) RecordPayment(ctx context.Context, id string, req dto.RecordPaymentRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RecordPayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return failure.BadRequestFromString("invalid payment amount") // nolint:wrapcheck
	}

	if errs := validation.Payment(booking, amount, req.Method); len(errs) > 0 {
		return failure.FromFields(errs) // nolint:wrapcheck
	}

	balance := booking.Balance.Sub(amount)

	paymentStatus := constant.PaymentStatusPartial
	if balance.IsZero() {
		paymentStatus = constant.PaymentStatusPaid
	}

	fields := map[string]any{
		model.FieldBalance:       balance,
		model.FieldPaymentStatus: paymentStatus,
		model.FieldPaymentMethod: req.Method,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to record payment")

		return fmt.Errorf("failed to record payment: %w", err)
	}

	s.invalidateBookingCaches(ctx, id)

	return nil
}

func (s *serviceImpl) Stats(ctx context.Context, lodgeID string) (res dto.StatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Stats")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{}
	if lodgeID != "" {
		role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
		assignedLodges, _ := ctx.Value(constant.ContextKeyAssignedLodges).([]string)

		if !permissions.CanAccessLodge(role, assignedLodges, lodgeID) {
			return res, failure.ResourceRestrictedError // nolint:wrapcheck
		}

		filter.Filters = append(filter.Filters, gDto.Filter{
			Table:    model.TableName,
			Field:    model.FieldLodgeID,
			Operator: gDto.FilterOperatorEq,
			Value:    lodgeID,
		})
	} else {
		filter = s.scopeFilter(ctx, filter)
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheStatsBooking, gDto.QueryParams{}, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking stats")

		return res, nil
	}

	stats, err := s.repo.Stats(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to aggregate booking stats")

		return res, fmt.Errorf("failed to aggregate booking stats: %w", err)
	}

	res.FromModel(stats)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking stats to cache")
		}
	}()

	return res, nil
}

// getBooking loads a booking by ID and enforces lodge scoping for the caller.
func (s *serviceImpl) getBooking(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	assignedLodges, _ := ctx.Value(constant.ContextKeyAssignedLodges).([]string)

	if !permissions.CanAccessLodge(role, assignedLodges, booking.LodgeID) {
		return booking, failure.ResourceRestrictedError // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) roomForBooking(ctx context.Context, roomID, lodgeID string) (roomModel.Room, error) {
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Table:    roomModel.TableName,
				Field:    roomModel.FieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    roomID,
			},
			gDto.Filter{
				Table:    roomModel.TableName,
				Field:    roomModel.FieldLodgeID,
				Operator: gDto.FilterOperatorEq,
				Value:    lodgeID,
			},
		},
	}

	room, err := s.roomRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room for booking")

		return room, fmt.Errorf("failed to get room for booking: %w", err)
	}

	if room.ID == constant.Empty {
		return room, failure.BadRequestFromString("room does not exist in this lodge") // nolint:wrapcheck
	}

	if !room.IsActive {
		return room, failure.BadRequestFromString("room is not available for booking") // nolint:wrapcheck
	}

	return room, nil
}

// price recomputes the booking's totals from its rate, stay window,
// discounts and extra charges.
func (s *serviceImpl) price(booking *model.Booking) {
	taxRate := decimal.NewFromFloat(s.cfg.Booking.TaxRate)

	breakdown := pricing.Calculate(booking.RoomRate, booking.CheckIn, booking.CheckOut, booking.Discounts, booking.ExtraCharges, taxRate)

	booking.Amount = breakdown.Total
	booking.Taxes = breakdown.Taxes
	booking.Balance = breakdown.Total.Sub(booking.Deposit)
}

// scopeFilter narrows list queries to the caller's lodges unless the caller
// has global access.
func (s *serviceImpl) scopeFilter(ctx context.Context, filter gDto.FilterGroup) gDto.FilterGroup {
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if permissions.HasGlobalAccess(role) {
		return filter
	}

	assignedLodges, _ := ctx.Value(constant.ContextKeyAssignedLodges).([]string)

	// An empty IN list must match nothing rather than everything.
	if len(assignedLodges) == 0 {
		assignedLodges = []string{constant.Empty}
	}

	filter.Filters = append(filter.Filters, gDto.Filter{
		ArgName:  "scoped_lodge_id",
		Table:    model.TableName,
		Field:    model.FieldLodgeID,
		Operator: gDto.FilterOperatorIn,
		Value:    assignedLodges,
	})

	return filter
}

func (s *serviceImpl) publishEvent(ctx context.Context, booking model.Booking, previousStatus string) {
	if s.kafka == nil || !s.cfg.Kafka.Enable {
		return
	}

	event := dto.BookingEvent{
		BookingID:      booking.ID,
		LodgeID:        booking.LodgeID,
		RoomID:         booking.RoomID,
		PreviousStatus: previousStatus,
		Status:         booking.Status,
		OccurredAt:     timezone.Now(),
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.kafka.SendMessages(c, constant.KafkaTopicBookingEvents, kafka.Message{Key: booking.ID, Value: event}); err != nil {
			log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to publish booking event")
		}
	}()
}

func (s *serviceImpl) invalidateListCaches(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
		shared.InvalidateCaches(c, s.cache, cacheStatsBooking)
	}()
}

func (s *serviceImpl) invalidateBookingCaches(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
		shared.InvalidateCaches(c, s.cache, cacheStatsBooking)
	}()
}

// updatableFields maps the booking's mutable columns for a full update after
// an edit, including repriced totals.
func updatableFields(booking model.Booking) map[string]any {
	return map[string]any{
		model.FieldGuestName:        booking.GuestName,
		model.FieldGuestEmail:       booking.GuestEmail,
		model.FieldGuestPhone:       booking.GuestPhone,
		model.FieldGuestAddress:     booking.GuestAddress,
		model.FieldGuestNationality: booking.GuestNationality,
		model.FieldGuestIDNumber:    booking.GuestIDNumber,
		model.FieldRoomID:           booking.RoomID,
		model.FieldRoomName:         booking.RoomName,
		model.FieldRoomType:         booking.RoomType,
		model.FieldCheckIn:          booking.CheckIn,
		model.FieldCheckOut:         booking.CheckOut,
		model.FieldGuests:           booking.Guests,
		model.FieldAdults:           booking.Adults,
		model.FieldChildren:         booking.Children,
		model.FieldAmount:           booking.Amount,
		model.FieldDeposit:          booking.Deposit,
		model.FieldBalance:          booking.Balance,
		model.FieldPaymentMethod:    booking.PaymentMethod,
		model.FieldBookingSource:    booking.BookingSource,
		model.FieldSpecialRequests:  booking.SpecialRequests,
		model.FieldNotes:            booking.Notes,
		model.FieldRoomRate:         booking.RoomRate,
		model.FieldTaxes:            booking.Taxes,
		model.FieldDiscounts:        booking.Discounts,
		model.FieldExtraCharges:     booking.ExtraCharges,
		constant.FieldModifiedAt:    booking.ModifiedAt,
		constant.FieldModifiedBy:    booking.ModifiedBy,
	}
}
