// internal/model/registration_event.go
package model

import "time"

type RegistrationEvent struct {
    EventID    string              `json:"event_id"`
    Customer   CustomerInformation `json:"customer"`
    QRCodePath string              `json:"qr_code_path,omitempty"`
    OccurredAt time.Time           `json:"occurred_at"`
}
