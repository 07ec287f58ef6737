// internal/controller/customer_information_controller.go
package controller

import (
    "encoding/json"
    "errors"
    "log"
    "net/http"

    appErrors "github.com/unclebandit/customer-registration/internal/errors"
    "github.com/unclebandit/customer-registration/internal/model"
    "github.com/unclebandit/customer-registration/internal/service"
)

type CustomerInformationController struct {
    CustomerInformationService *service.CustomerInformationService
}

func (c *CustomerInformationController) CreateCustomerInformation(w http.ResponseWriter, r *http.Request) {
    input := model.NewCreateCustomerInformationInput()
    if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }

    result, err := c.CustomerInformationService.Submit(r.Context(), input)
    if err != nil {
        var verr *appErrors.ValidationError
        if errors.As(err, &verr) {
            writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
                "errors": verr.Fields,
            })
            return
        }
        log.Println("❌ Submit failed:", err)
        http.Error(w, err.Error(), http.StatusInternalServerError)
        return
    }

    writeJSON(w, http.StatusOK, result)
}

func (c *CustomerInformationController) ListCustomerInformations(w http.ResponseWriter, r *http.Request) {
    customers, err := c.CustomerInformationService.ListCustomerInformations(r.Context())
    if err != nil {
        http.Error(w, "failed to fetch customer informations: "+err.Error(), http.StatusBadGateway)
        return
    }

    writeJSON(w, http.StatusOK, map[string]interface{}{
        "data": customers,
    })
}

func (c *CustomerInformationController) ValidateField(w http.ResponseWriter, r *http.Request) {
    input := model.NewCreateCustomerInformationInput()
    if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }

    field := r.URL.Query().Get("field")
    msg, ok := c.CustomerInformationService.ValidateField(input, field)
    if !ok {
        http.Error(w, "unknown field", http.StatusBadRequest)
        return
    }

    writeJSON(w, http.StatusOK, map[string]string{
        "field": field,
        "error": msg,
    })
}

func Health(w http.ResponseWriter, r *http.Request) {
    w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    json.NewEncoder(w).Encode(v)
}
