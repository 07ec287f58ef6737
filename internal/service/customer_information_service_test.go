package service_test

import (
    "context"
    "errors"
    "strings"
    "sync"
    "testing"

    "golang.org/x/crypto/bcrypt"

    appErrors "github.com/unclebandit/customer-registration/internal/errors"
    "github.com/unclebandit/customer-registration/internal/model"
    "github.com/unclebandit/customer-registration/internal/service"
    "github.com/unclebandit/customer-registration/internal/validation"
)

// MockCustomerInformationRepo records calls and returns canned results
type MockCustomerInformationRepo struct {
    CreateErr   error
    ListErr     error
    Existing    []model.CustomerInformation
    NextQRPath  string
    CreateCalls int
    ListCalls   int
    LastInput   model.CreateCustomerInformationInput
}

func (m *MockCustomerInformationRepo) Create(ctx context.Context, input model.CreateCustomerInformationInput) (*model.CustomerInformation, error) {
    m.CreateCalls++
    m.LastInput = input
    if m.CreateErr != nil {
        return nil, m.CreateErr
    }
    c := model.CustomerInformation{
        FirstName:     input.FirstName,
        LastName:      input.LastName,
        PasswordHash:  input.PasswordHash,
        Birthdate:     input.Birthdate,
        Gender:        input.Gender,
        Address:       input.Address,
        Email:         input.Email,
        ContactNumber: input.ContactNumber,
    }
    stored := c
    stored.ID = "id-" + input.Email
    stored.QRCodePath = m.NextQRPath
    m.Existing = append(m.Existing, stored)
    return &c, nil
}

func (m *MockCustomerInformationRepo) ListAll(ctx context.Context) ([]model.CustomerInformation, error) {
    m.ListCalls++
    if m.ListErr != nil {
        return nil, m.ListErr
    }
    out := make([]model.CustomerInformation, len(m.Existing))
    copy(out, m.Existing)
    return out, nil
}

// MockQueue captures published payloads
type MockQueue struct {
    mu        sync.Mutex
    published []any
}

func (q *MockQueue) Publish(topic string, payload any) error {
    q.mu.Lock()
    defer q.mu.Unlock()
    q.published = append(q.published, payload)
    return nil
}

func (q *MockQueue) Subscribe(topic string, handler func(payload any) error) error { return nil }

func validInput() model.CreateCustomerInformationInput {
    return model.CreateCustomerInformationInput{
        FirstName:     "Alice",
        LastName:      "Smith",
        PasswordHash:  "s3cret",
        Birthdate:     "1990-04-12",
        Gender:        model.GenderFemale,
        Address:       "12 Moi Avenue, Nairobi",
        Email:         "alice@example.com",
        ContactNumber: "0712345678",
    }
}

func newService(repo *MockCustomerInformationRepo) *service.CustomerInformationService {
    return &service.CustomerInformationService{
        Repo:          repo,
        Validator:     validation.New(),
        QRCodeBaseURL: "http://localhost:3001/",
    }
}

func TestSubmit_EmptyFieldBlocksSubmission(t *testing.T) {
    repo := &MockCustomerInformationRepo{}
    svc := newService(repo)

    input := validInput()
    input.Address = ""

    result, err := svc.Submit(context.Background(), input)

    var verr *appErrors.ValidationError
    if !errors.As(err, &verr) {
        t.Fatalf("expected ValidationError, got %v", err)
    }
    if result != nil {
        t.Errorf("expected no result, got %+v", result)
    }
    if verr.Fields["address"] != "Address is required" {
        t.Errorf("unexpected field errors: %+v", verr.Fields)
    }
    if repo.CreateCalls != 0 {
        t.Errorf("mutation must not be sent, got %d calls", repo.CreateCalls)
    }
}

func TestSubmit_InvalidEmailAndContactNumberAreRejected(t *testing.T) {
    repo := &MockCustomerInformationRepo{}
    svc := newService(repo)

    input := validInput()
    input.Email = "alice.example.com"
    input.ContactNumber = "07 12 34"

    _, err := svc.Submit(context.Background(), input)

    var verr *appErrors.ValidationError
    if !errors.As(err, &verr) {
        t.Fatalf("expected ValidationError, got %v", err)
    }
    if verr.Fields["email"] != "Invalid email" {
        t.Errorf("expected email error, got %q", verr.Fields["email"])
    }
    if verr.Fields["contactNumber"] != "Invalid Contact Number" {
        t.Errorf("expected contact number error, got %q", verr.Fields["contactNumber"])
    }
    if repo.CreateCalls != 0 {
        t.Errorf("mutation must not be sent")
    }
}

func TestSubmit_SuccessRefetchesAndShowsLatestQRCode(t *testing.T) {
    repo := &MockCustomerInformationRepo{
        Existing:   []model.CustomerInformation{{ID: "1", QRCodePath: "qrcodes/older.png"}},
        NextQRPath: "qrcodes/alice.png",
    }
    q := &MockQueue{}
    svc := newService(repo)
    svc.Queue = q

    result, err := svc.Submit(context.Background(), validInput())
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }

    if repo.ListCalls != 1 {
        t.Errorf("expected list to be refetched once, got %d", repo.ListCalls)
    }
    if !result.Submitted || !result.Popup || result.Message != service.SuccessMessage {
        t.Errorf("unexpected result %+v", result)
    }
    if result.ErrorMessage != "" {
        t.Errorf("expected no error message, got %q", result.ErrorMessage)
    }
    if !result.ShowQR {
        t.Fatal("expected QR code to be shown")
    }
    if result.QRCodeURL != "http://localhost:3001/qrcodes/alice.png" {
        t.Errorf("unexpected QR URL %q", result.QRCodeURL)
    }
    if result.Customer.PasswordHash != "" {
        t.Error("password must not be returned")
    }

    if len(q.published) != 1 {
        t.Fatalf("expected one registration event, got %d", len(q.published))
    }
    event := q.published[0].(model.RegistrationEvent)
    if event.QRCodePath != "qrcodes/alice.png" || event.Customer.Email != "alice@example.com" {
        t.Errorf("unexpected event %+v", event)
    }
    if event.Customer.PasswordHash != "" {
        t.Error("event must not carry the password")
    }
    if event.EventID == "" {
        t.Error("expected event id")
    }
}

func TestSubmit_SuccessWithEmptyRefetchHidesQRCode(t *testing.T) {
    repo := &MockCustomerInformationRepo{}
    svc := newService(repo)
    // the mock stores every created record, so drop it to simulate an empty list
    svc.Repo = &emptyListRepo{MockCustomerInformationRepo: repo}

    result, err := svc.Submit(context.Background(), validInput())
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if !result.Submitted {
        t.Error("expected submitted")
    }
    if result.ShowQR {
        t.Error("QR must stay hidden while the list is empty")
    }
}

type emptyListRepo struct {
    *MockCustomerInformationRepo
}

func (r *emptyListRepo) ListAll(ctx context.Context) ([]model.CustomerInformation, error) {
    r.ListCalls++
    return []model.CustomerInformation{}, nil
}

func TestSubmit_RefetchFailureKeepsSuccessPopup(t *testing.T) {
    repo := &MockCustomerInformationRepo{ListErr: errors.New("timeout")}
    svc := newService(repo)

    result, err := svc.Submit(context.Background(), validInput())
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if result.Message != service.SuccessMessage || result.ShowQR {
        t.Errorf("unexpected result %+v", result)
    }
}

func TestSubmit_GraphQLErrorsShowJoinedMessage(t *testing.T) {
    repo := &MockCustomerInformationRepo{
        CreateErr: appErrors.NewGraphQLError([]string{"Email already exists", "Contact number already exists"}),
    }
    svc := newService(repo)

    result, err := svc.Submit(context.Background(), validInput())
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }

    if !result.Popup {
        t.Error("expected popup")
    }
    if result.ErrorMessage != "Email already exists, Contact number already exists" {
        t.Errorf("unexpected error message %q", result.ErrorMessage)
    }
    if result.ShowQR || result.Submitted {
        t.Errorf("QR must not appear on failure: %+v", result)
    }
    if repo.ListCalls != 0 {
        t.Errorf("list must not be refetched on failure")
    }
}

func TestSubmit_TransportErrorShowsMessage(t *testing.T) {
    repo := &MockCustomerInformationRepo{
        CreateErr: appErrors.NewTransportError(errors.New("dial tcp 127.0.0.1:3001: connection refused")),
    }
    svc := newService(repo)

    result, err := svc.Submit(context.Background(), validInput())
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if !strings.Contains(result.ErrorMessage, "connection refused") {
        t.Errorf("unexpected error message %q", result.ErrorMessage)
    }
    if result.ShowQR {
        t.Error("QR must not appear on failure")
    }
}

func TestSubmit_HashesPasswordBeforeSending(t *testing.T) {
    repo := &MockCustomerInformationRepo{}
    svc := newService(repo)
    svc.HashPasswords = true
    svc.HashCost = bcrypt.MinCost

    if _, err := svc.Submit(context.Background(), validInput()); err != nil {
        t.Fatalf("unexpected error: %v", err)
    }

    sent := repo.LastInput.PasswordHash
    if sent == "s3cret" {
        t.Fatal("password was sent in plain text")
    }
    if err := bcrypt.CompareHashAndPassword([]byte(sent), []byte("s3cret")); err != nil {
        t.Errorf("sent value is not a bcrypt hash of the password: %v", err)
    }
}

func TestSubmit_PlainPasswordWhenHashingDisabled(t *testing.T) {
    repo := &MockCustomerInformationRepo{}
    svc := newService(repo)

    if _, err := svc.Submit(context.Background(), validInput()); err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if repo.LastInput.PasswordHash != "s3cret" {
        t.Errorf("expected password to pass through, got %q", repo.LastInput.PasswordHash)
    }
}

func TestSubmit_PasswordTooLongForBcrypt(t *testing.T) {
    repo := &MockCustomerInformationRepo{}
    svc := newService(repo)
    svc.HashPasswords = true
    svc.HashCost = bcrypt.MinCost

    input := validInput()
    input.PasswordHash = strings.Repeat("x", 100)

    _, err := svc.Submit(context.Background(), input)

    var verr *appErrors.ValidationError
    if !errors.As(err, &verr) {
        t.Fatalf("expected ValidationError, got %v", err)
    }
    if repo.CreateCalls != 0 {
        t.Error("mutation must not be sent")
    }
}

func TestListCustomerInformationsRedactsPasswords(t *testing.T) {
    repo := &MockCustomerInformationRepo{
        Existing: []model.CustomerInformation{{ID: "1", PasswordHash: "$2a$10$abc"}},
    }
    svc := newService(repo)

    list, err := svc.ListCustomerInformations(context.Background())
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if len(list) != 1 || list[0].PasswordHash != "" {
        t.Errorf("unexpected list %+v", list)
    }
}

func TestQRCodeURL(t *testing.T) {
    tests := []struct {
        base, path, want string
    }{
        {"http://localhost:3001/", "qrcodes/1.png", "http://localhost:3001/qrcodes/1.png"},
        {"http://localhost:3001", "qrcodes/1.png", "http://localhost:3001/qrcodes/1.png"},
        {"http://localhost:3001/", "/qrcodes/1.png", "http://localhost:3001/qrcodes/1.png"},
        {"http://localhost:3001/", "https://cdn.example.com/q.png", "https://cdn.example.com/q.png"},
        {"http://localhost:3001/", "", ""},
    }
    for _, tt := range tests {
        if got := service.QRCodeURL(tt.base, tt.path); got != tt.want {
            t.Errorf("QRCodeURL(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.want)
        }
    }
}
