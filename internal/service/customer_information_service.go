// internal/service/customer_information_service.go
package service

import (
    "context"
    "errors"
    "fmt"
    "log"
    "strings"
    "time"

    "github.com/google/uuid"
    "golang.org/x/crypto/bcrypt"

    appErrors "github.com/unclebandit/customer-registration/internal/errors"
    "github.com/unclebandit/customer-registration/internal/model"
    "github.com/unclebandit/customer-registration/internal/queue"
    "github.com/unclebandit/customer-registration/internal/repository"
    "github.com/unclebandit/customer-registration/internal/validation"
)

const SuccessMessage = "Create Successfully"

type CustomerInformationService struct {
    Repo          repository.CustomerInformationRepositoryInterface
    Validator     *validation.Validator
    Queue         queue.Queue
    QRCodeBaseURL string
    HashPasswords bool
    HashCost      int
}

// SubmissionResult is what the page needs after a submit: the popup and the QR panel
type SubmissionResult struct {
    Submitted    bool                       `json:"submitted"`
    Popup        bool                       `json:"popup"`
    Message      string                     `json:"message"`
    ErrorMessage string                     `json:"error_message,omitempty"`
    ShowQR       bool                       `json:"show_qr"`
    QRCodePath   string                     `json:"qr_code_path,omitempty"`
    QRCodeURL    string                     `json:"qr_code_url,omitempty"`
    Customer     *model.CustomerInformation `json:"customer,omitempty"`
}

// Submit validates the form, sends the mutation and refetches the list for the QR code.
// Invalid input returns *appErrors.ValidationError and nothing is sent. Mutation failures are
// reported in the result, not as an error.
func (s *CustomerInformationService) Submit(ctx context.Context, input model.CreateCustomerInformationInput) (*SubmissionResult, error) {
    if fieldErrors := s.Validator.Validate(input); len(fieldErrors) > 0 {
        return nil, appErrors.NewValidationError(fieldErrors)
    }

    payload := input
    if s.HashPasswords {
        hashed, err := bcrypt.GenerateFromPassword([]byte(input.PasswordHash), s.hashCost())
        if err != nil {
            if errors.Is(err, bcrypt.ErrPasswordTooLong) {
                return nil, appErrors.NewValidationError(map[string]string{"passwordHash": "Password is too long"})
            }
            return nil, fmt.Errorf("hash password: %w", err)
        }
        payload.PasswordHash = string(hashed)
    }

    created, err := s.Repo.Create(ctx, payload)
    if err != nil {
        var gqlErr *appErrors.GraphQLError
        if errors.As(err, &gqlErr) {
            log.Println("❌ GraphQL Errors:", gqlErr.Messages)
        } else {
            log.Println("❌ Failed to create customer information:", err)
        }
        return &SubmissionResult{
            Popup:        true,
            Message:      err.Error(),
            ErrorMessage: err.Error(),
        }, nil
    }

    log.Println("✅ Form submitted successfully")

    result := &SubmissionResult{
        Submitted: true,
        Popup:     true,
        Message:   SuccessMessage,
        Customer:  redact(*created),
    }

    customers, err := s.Repo.ListAll(ctx)
    if err != nil {
        log.Println("⚠️ Failed to refetch customer informations:", err)
    } else if len(customers) > 0 {
        latest := customers[len(customers)-1]
        result.QRCodePath = latest.QRCodePath
        result.QRCodeURL = QRCodeURL(s.QRCodeBaseURL, latest.QRCodePath)
        result.ShowQR = true
    }

    s.publishRegistration(*result.Customer, result.QRCodePath)

    return result, nil
}

// ValidateField runs the rules of one field, for blur checks
func (s *CustomerInformationService) ValidateField(input model.CreateCustomerInformationInput, field string) (string, bool) {
    return s.Validator.ValidateField(input, field)
}

// ListCustomerInformations returns every record without password hashes
func (s *CustomerInformationService) ListCustomerInformations(ctx context.Context) ([]model.CustomerInformation, error) {
    customers, err := s.Repo.ListAll(ctx)
    if err != nil {
        return nil, err
    }
    for i := range customers {
        customers[i].PasswordHash = ""
    }
    return customers, nil
}

// QRCodeURL joins the image host and a server-provided path
func QRCodeURL(base, path string) string {
    if path == "" {
        return ""
    }
    if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
        return path
    }
    return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

func (s *CustomerInformationService) publishRegistration(customer model.CustomerInformation, qrCodePath string) {
    if s.Queue == nil {
        return
    }

    event := model.RegistrationEvent{
        EventID:    uuid.NewString(),
        Customer:   customer,
        QRCodePath: qrCodePath,
        OccurredAt: time.Now().UTC(),
    }
    if err := s.Queue.Publish(queue.RegistrationTopic, event); err != nil {
        log.Println("⚠️ failed to enqueue registration event:", err)
    }
}

func (s *CustomerInformationService) hashCost() int {
    if s.HashCost == 0 {
        return bcrypt.DefaultCost
    }
    return s.HashCost
}

func redact(c model.CustomerInformation) *model.CustomerInformation {
    c.PasswordHash = ""
    return &c
}
