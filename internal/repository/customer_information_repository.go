// internal/repository/customer_information_repository.go
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	graphql "github.com/hasura/go-graphql-client"

	appErrors "github.com/unclebandit/customer-registration/internal/errors"
	"github.com/unclebandit/customer-registration/internal/model"
)

// CustomerInformationRepositoryInterface defines methods used by service
type CustomerInformationRepositoryInterface interface {
	Create(ctx context.Context, input model.CreateCustomerInformationInput) (*model.CustomerInformation, error)
	ListAll(ctx context.Context) ([]model.CustomerInformation, error)
}

// CustomerInformationRepository is backed by the remote GraphQL server
type CustomerInformationRepository struct {
	Client *graphql.Client
}

func NewCustomerInformationRepository(endpoint string, httpClient *http.Client) *CustomerInformationRepository {
	return &CustomerInformationRepository{
		Client: graphql.NewClient(endpoint, httpClient),
	}
}

// Create sends the createCustomerInformation mutation and returns the echoed record
func (r *CustomerInformationRepository) Create(ctx context.Context, input model.CreateCustomerInformationInput) (*model.CustomerInformation, error) {
	raw, err := r.Client.ExecRaw(ctx, CreateCustomerInformationMutation, input.Variables())
	if err != nil {
		return nil, translateError(err)
	}

	var data struct {
		CreateCustomerInformation *model.CustomerInformation `json:"createCustomerInformation"`
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, appErrors.NewTransportError(fmt.Errorf("decode createCustomerInformation: %w", err))
	}
	if data.CreateCustomerInformation == nil {
		return nil, appErrors.NewTransportError(errors.New("createCustomerInformation returned no data"))
	}
	return data.CreateCustomerInformation, nil
}

// ListAll runs getAllCustomerInformations; the server returns records oldest first
func (r *CustomerInformationRepository) ListAll(ctx context.Context) ([]model.CustomerInformation, error) {
	raw, err := r.Client.ExecRaw(ctx, GetAllCustomerInformationsQuery, nil)
	if err != nil {
		return nil, translateError(err)
	}

	var data struct {
		GetAllCustomerInformations []model.CustomerInformation `json:"getAllCustomerInformations"`
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, appErrors.NewTransportError(fmt.Errorf("decode getAllCustomerInformations: %w", err))
	}
	if data.GetAllCustomerInformations == nil {
		return []model.CustomerInformation{}, nil
	}
	return data.GetAllCustomerInformations, nil
}

// codes the client attaches to failures it produced itself
var clientErrorCodes = map[string]bool{
	"request_error":        true,
	"json_encode_error":    true,
	"json_decode_error":    true,
	"graphql_encode_error": true,
	"graphql_decode_error": true,
}

// translateError separates errors reported by the GraphQL server from failures of the transport
func translateError(err error) error {
	var gqlErrs graphql.Errors
	if !errors.As(err, &gqlErrs) || len(gqlErrs) == 0 {
		return appErrors.NewTransportError(err)
	}

	messages := make([]string, 0, len(gqlErrs))
	clientFailure := false
	for _, e := range gqlErrs {
		if code, _ := e.Extensions["code"].(string); clientErrorCodes[code] {
			clientFailure = true
		}
		messages = append(messages, e.Message)
	}
	if clientFailure {
		return appErrors.NewTransportErrorWithMessage(strings.Join(messages, ", "), err)
	}
	return appErrors.NewGraphQLError(messages)
}

var _ CustomerInformationRepositoryInterface = (*CustomerInformationRepository)(nil)
