// internal/service/template_service.go
package service

import (
    "strings"

    "github.com/unclebandit/customer-registration/internal/model"
)

const WelcomeTemplate = "Hi {first_name} {last_name}, your registration is complete. Your QR code: {qr_code_path}"

func RenderTemplate(template string, data map[string]string) string {
    result := template
    for k, v := range data {
        if v == "" {
            v = "<unknown>"
        }
        result = strings.ReplaceAll(result, "{"+k+"}", v)
    }
    return result
}

// RenderWelcome fills WelcomeTemplate from a registration event
func RenderWelcome(event model.RegistrationEvent) string {
    return RenderTemplate(WelcomeTemplate, map[string]string{
        "first_name":   event.Customer.FirstName,
        "last_name":    event.Customer.LastName,
        "qr_code_path": event.QRCodePath,
    })
}
