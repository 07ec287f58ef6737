//cmd/seeder/main.go
package main

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "log"
    "net/http"
    "os"

    "github.com/unclebandit/customer-registration/internal/config"
    appErrors "github.com/unclebandit/customer-registration/internal/errors"
    "github.com/unclebandit/customer-registration/internal/model"
    "github.com/unclebandit/customer-registration/internal/repository"
    "github.com/unclebandit/customer-registration/internal/service"
    "github.com/unclebandit/customer-registration/internal/validation"
)

func main() {
    cfg, err := config.Load()
    if err != nil {
        log.Fatal(err)
    }

    seedFile := cfg.SeedFile
    if len(os.Args) > 1 {
        seedFile = os.Args[1]
    }

    inputs, err := loadSeed(seedFile)
    if err != nil {
        log.Fatalf("failed to read %s: %v", seedFile, err)
    }

    svc := &service.CustomerInformationService{
        Repo:          repository.NewCustomerInformationRepository(cfg.GraphQLEndpoint, &http.Client{Timeout: cfg.GraphQLTimeout}),
        Validator:     validation.New(),
        QRCodeBaseURL: cfg.QRCodeBaseURL,
        HashPasswords: cfg.HashPasswords,
    }

    created := 0
    for i, input := range inputs {
        result, err := svc.Submit(context.Background(), input)
        if err != nil {
            var verr *appErrors.ValidationError
            if errors.As(err, &verr) {
                log.Printf("skipping record %d: %v", i, verr)
                continue
            }
            log.Fatalf("failed to seed record %d: %v", i, err)
        }
        if result.ErrorMessage != "" {
            log.Printf("record %d rejected: %s", i, result.ErrorMessage)
            continue
        }
        created++
        fmt.Printf("Seeded: %s %s (%s)\n", input.FirstName, input.LastName, result.QRCodeURL)
    }

    fmt.Printf("Seeding completed: %d/%d customer informations created\n", created, len(inputs))
}

func loadSeed(path string) ([]model.CreateCustomerInformationInput, error) {
    content, err := os.ReadFile(path)
    if err != nil {
        return nil, err
    }

    var inputs []model.CreateCustomerInformationInput
    if err := json.Unmarshal(content, &inputs); err != nil {
        return nil, fmt.Errorf("decode seed: %w", err)
    }
    return inputs, nil
}
