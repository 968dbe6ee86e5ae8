package events

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"

	"lodgehub/config"
	"lodgehub/infras/kafka"
	"lodgehub/infras/otel"
	bookingDto "lodgehub/internal/domains/booking/model/dto"
	lodgeService "lodgehub/internal/domains/lodge/service"
	roomModel "lodgehub/internal/domains/room/model"
	roomRepo "lodgehub/internal/domains/room/repository"
	"lodgehub/shared"
	"lodgehub/shared/constant"
	"lodgehub/shared/timezone"
)

const handleTimeout = 30 * time.Second

// BookingConsumer reacts to booking status events: a check-in marks the room
// occupied, a check-out sends it to cleaning, and either way the lodge
// inventory counters get recomputed.
type BookingConsumer interface {
	Run(ctx context.Context)
	Handle(msg kafkaGo.Message)
}

type bookingConsumerImpl struct {
	kafka    kafka.Client
	roomRepo roomRepo.Room
	lodgeSvc lodgeService.Lodge
	cfg      *config.Config
	otel     otel.Otel
}

func New(kafkaClient kafka.Client, roomRepo roomRepo.Room, lodgeSvc lodgeService.Lodge, cfg *config.Config, otel otel.Otel) BookingConsumer {
	return &bookingConsumerImpl{
		kafka:    kafkaClient,
		roomRepo: roomRepo,
		lodgeSvc: lodgeSvc,
		cfg:      cfg,
		otel:     otel,
	}
}

// Run blocks consuming the booking events topic until the context is done.
func (c *bookingConsumerImpl) Run(ctx context.Context) {
	if !c.cfg.Kafka.Enable {
		log.Info().Msg("Kafka disabled, booking consumer not started.")

		return
	}

	log.Info().Str("topic", constant.KafkaTopicBookingEvents).Msg("Starting booking events consumer.")

	c.kafka.Consume(ctx, c.cfg.Kafka.ConsumerGroup, constant.KafkaTopicBookingEvents, c.Handle)
}

func (c *bookingConsumerImpl) Handle(msg kafkaGo.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	ctx, scope := c.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Handle")
	defer scope.End()

	decoded, err := kafka.DecodeKafkaMessage[bookingDto.BookingEvent](msg)
	if err != nil {
		log.Error().Err(err).Msg("failed to decode booking event")

		return
	}

	event, ok := decoded.Value.(bookingDto.BookingEvent)
	if !ok {
		log.Error().Msg("unexpected booking event payload")

		return
	}

	roomStatus, ok := roomStatusFor(event.Status)
	if !ok {
		return
	}

	if err := c.updateRoomStatus(ctx, event.RoomID, roomStatus); err != nil {
		log.Error().Err(err).Str("bookingID", event.BookingID).Msg("failed to apply booking event to room")

		return
	}

	if _, err := c.lodgeSvc.RecomputeInventory(ctx, event.LodgeID); err != nil {
		log.Error().Err(err).Str("lodgeID", event.LodgeID).Msg("failed to recompute lodge inventory")
	}
}

// roomStatusFor maps a booking status to the room status it implies. Statuses
// with no room-side effect return false.
func roomStatusFor(bookingStatus string) (string, bool) {
	switch bookingStatus {
	case constant.BookingStatusCheckedIn:
		return constant.RoomStatusOccupied, true
	case constant.BookingStatusCheckedOut:
		return constant.RoomStatusCleaning, true
	default:
		return constant.Empty, false
	}
}

func (c *bookingConsumerImpl) updateRoomStatus(ctx context.Context, roomID, status string) error {
	fields := map[string]any{
		roomModel.FieldStatus:    status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: constant.SystemActor,
	}

	if err := c.roomRepo.Update(ctx, fields, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName)); err != nil {
		return fmt.Errorf("failed to update room status: %w", err)
	}

	return nil
}
