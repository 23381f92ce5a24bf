package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/easymed/billing/internal/entity"
)

type Producer struct {
	l             *slog.Logger
	w             *kafka.Writer
	paymentsTopic string
}

func NewProducer(l *slog.Logger, brokers []string, topic string) *Producer {
	l = l.WithGroup("kafka").With("topic", topic)

	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "",
		Balancer:               &kafka.LeastBytes{},
		Async:                  true,
		Compression:            0,
		Logger:                 &infoLogger{l: l},
		ErrorLogger:            &errorLogger{l: l},
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		l:             l,
		w:             w,
		paymentsTopic: topic,
	}
}

type PaymentAllocatedEvent struct {
	Type            string                 `json:"type"`
	ReceiptID       int64                  `json:"receipt_id"`
	PatientID       *int64                 `json:"patient_id,omitempty"`
	InsurerID       *int64                 `json:"insurer_id,omitempty"`
	PaymentModeID   int64                  `json:"payment_mode_id"`
	TotalAmount     string                 `json:"total_amount"`
	Allocated       string                 `json:"allocated"`
	Unallocated     string                 `json:"unallocated"`
	ReferenceNumber string                 `json:"reference_number"`
	CreatedAt       time.Time              `json:"created_at"`
	Allocations     []AllocationEventEntry `json:"allocations"`
}

type AllocationEventEntry struct {
	InvoiceItemID int64  `json:"invoice_item_id"`
	InvoiceID     int64  `json:"invoice_id"`
	AmountApplied string `json:"amount_applied"`
}

// SendPaymentAllocated publishes the receipt with its allocation detail so
// downstream consumers (reporting, patient portal) can reconcile what was
// applied. Delivery is async and best effort; the allocation itself has
// already committed.
func (p *Producer) SendPaymentAllocated(ctx context.Context, receipt entity.PaymentReceipt) {
	allocated := receipt.Allocated()

	event := PaymentAllocatedEvent{
		Type:            "payment.allocated",
		ReceiptID:       receipt.ID,
		PatientID:       receipt.PatientID,
		InsurerID:       receipt.InsurerID,
		PaymentModeID:   receipt.PaymentModeID,
		TotalAmount:     receipt.TotalAmount.String(),
		Allocated:       allocated.String(),
		Unallocated:     receipt.TotalAmount.Sub(allocated).String(),
		ReferenceNumber: receipt.ReferenceNumber,
		CreatedAt:       receipt.CreatedAt,
		Allocations:     make([]AllocationEventEntry, 0, len(receipt.Allocations)),
	}

	for _, a := range receipt.Allocations {
		event.Allocations = append(event.Allocations, AllocationEventEntry{
			InvoiceItemID: a.InvoiceItemID,
			InvoiceID:     a.InvoiceID,
			AmountApplied: a.AmountApplied.String(),
		})
	}

	b, err := json.Marshal(event)
	if err != nil {
		p.l.Error(fmt.Sprintf("marshal event: %s", err))
		return
	}

	err = p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(receipt.ID, 10)),
		Value: b,
		Topic: p.paymentsTopic,
	})
	if err != nil {
		p.l.Error(fmt.Sprintf("write kafka message: %s", err))
		return
	}
}

func (p *Producer) Close() {
	err := p.w.Close()
	if err != nil {
		p.l.Error(fmt.Sprintf("close kafka writer: %s", err))
	}
}
