// internal/model/customer_information.go
package model

type Gender string

const (
    GenderMale   Gender = "MALE"
    GenderFemale Gender = "FEMALE"
    GenderOther  Gender = "OTHER"
)

// Genders lists the values the backend's GenderMutations enum accepts, in display order.
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

// Label is the text shown in the gender select.
func (g Gender) Label() string {
    switch g {
    case GenderMale:
        return "Male"
    case GenderFemale:
        return "Female"
    case GenderOther:
        return "Other"
    }
    return string(g)
}

// CustomerInformation is the record returned by the GraphQL server.
// ID and QRCodePath are only populated in query results.
type CustomerInformation struct {
    ID            string `json:"id,omitempty"`
    FirstName     string `json:"firstName"`
    LastName      string `json:"lastName"`
    PasswordHash  string `json:"passwordHash,omitempty"`
    Birthdate     string `json:"birthdate"`
    Gender        Gender `json:"gender"`
    Address       string `json:"address"`
    Email         string `json:"email"`
    ContactNumber string `json:"contactNumber"`
    QRCodePath    string `json:"qrCodePath,omitempty"`
}

// CreateCustomerInformationInput holds the submitted form fields.
type CreateCustomerInformationInput struct {
    FirstName     string `json:"firstName" validate:"required"`
    LastName      string `json:"lastName" validate:"required"`
    PasswordHash  string `json:"passwordHash" validate:"required"`
    Birthdate     string `json:"birthdate" validate:"required,datetime=2006-01-02"`
    Gender        Gender `json:"gender" validate:"required,oneof=MALE FEMALE OTHER"`
    Address       string `json:"address" validate:"required"`
    Email         string `json:"email" validate:"required,email"`
    ContactNumber string `json:"contactNumber" validate:"required,digits"`
}

// NewCreateCustomerInformationInput returns the initial form values.
func NewCreateCustomerInformationInput() CreateCustomerInformationInput {
    return CreateCustomerInformationInput{Gender: GenderMale}
}

// Variables maps the input onto the mutation's variable names.
func (in CreateCustomerInformationInput) Variables() map[string]interface{} {
    return map[string]interface{}{
        "firstName":     in.FirstName,
        "lastName":      in.LastName,
        "passwordHash":  in.PasswordHash,
        "birthdate":     in.Birthdate,
        "gender":        string(in.Gender),
        "address":       in.Address,
        "email":         in.Email,
        "contactNumber": in.ContactNumber,
    }
}
