// internal/handler/page_handler.go
package handler

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	appErrors "github.com/unclebandit/customer-registration/internal/errors"
	"github.com/unclebandit/customer-registration/internal/model"
	"github.com/unclebandit/customer-registration/internal/service"
	"github.com/unclebandit/customer-registration/internal/validation"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// PageHandler serves the registration page and its form endpoints
type PageHandler struct {
	Service *service.CustomerInformationService
}

func NewPageHandler(svc *service.CustomerInformationService) *PageHandler {
	return &PageHandler{Service: svc}
}

type formField struct {
	Name        string
	Type        string
	Placeholder string
	Value       string
	Error       string
}

type pageData struct {
	Fields  []formField
	Genders []model.Gender
	Result  *service.SubmissionResult
}

var fieldInputs = map[string]struct{ Type, Placeholder string }{
	"firstName":     {"text", "First Name"},
	"lastName":      {"text", "Last Name"},
	"passwordHash":  {"password", "Password"},
	"birthdate":     {"date", "Birth Date"},
	"gender":        {"select", "Gender"},
	"address":       {"text", "Address"},
	"email":         {"email", "Email"},
	"contactNumber": {"text", "Contact Number"},
}

// Index renders an empty form
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, model.NewCreateCustomerInformationInput(), nil, nil)
}

// Submit handles the form post
func (h *PageHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	input := inputFromForm(r)

	result, err := h.Service.Submit(r.Context(), input)
	if err != nil {
		var verr *appErrors.ValidationError
		if errors.As(err, &verr) {
			h.render(w, http.StatusUnprocessableEntity, input, verr.Fields, nil)
			return
		}
		log.Println("❌ Submit failed:", err)
		http.Error(w, "failed to submit customer information", http.StatusInternalServerError)
		return
	}

	if result.Submitted {
		// a fresh form after a successful registration
		input = model.NewCreateCustomerInformationInput()
	}
	h.render(w, http.StatusOK, input, nil, result)
}

// ValidateField checks one field of the posted form, called when an input loses focus
func (h *PageHandler) ValidateField(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	field := r.URL.Query().Get("field")
	msg, ok := h.Service.ValidateField(inputFromForm(r), field)
	if !ok {
		http.Error(w, "unknown field", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"field": field,
		"error": msg,
	})
}

// Static serves the stylesheet
func (h *PageHandler) Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

func (h *PageHandler) render(w http.ResponseWriter, status int, input model.CreateCustomerInformationInput, fieldErrors validation.FieldErrors, result *service.SubmissionResult) {
	values := map[string]string{
		"firstName":     input.FirstName,
		"lastName":      input.LastName,
		"passwordHash":  "", // never echoed back into the page
		"birthdate":     input.Birthdate,
		"gender":        string(input.Gender),
		"address":       input.Address,
		"email":         input.Email,
		"contactNumber": input.ContactNumber,
	}

	data := pageData{Genders: model.Genders, Result: result}
	for _, name := range validation.Fields {
		in := fieldInputs[name]
		data.Fields = append(data.Fields, formField{
			Name:        name,
			Type:        in.Type,
			Placeholder: in.Placeholder,
			Value:       values[name],
			Error:       fieldErrors[name],
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, data); err != nil {
		log.Println("❌ Failed to render page:", err)
	}
}

func inputFromForm(r *http.Request) model.CreateCustomerInformationInput {
	return model.CreateCustomerInformationInput{
		FirstName:     r.PostFormValue("firstName"),
		LastName:      r.PostFormValue("lastName"),
		PasswordHash:  r.PostFormValue("passwordHash"),
		Birthdate:     r.PostFormValue("birthdate"),
		Gender:        model.Gender(r.PostFormValue("gender")),
		Address:       r.PostFormValue("address"),
		Email:         r.PostFormValue("email"),
		ContactNumber: r.PostFormValue("contactNumber"),
	}
}
