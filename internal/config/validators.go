// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/gizzahub/lpci-go/internal/identifier"
)

var (
	validatorInstance *validator.Validate
	validatorOnce     sync.Once
)

// structValidator returns a process-wide validator.Validate with the
// "identifier" custom tag registered, mirroring the teacher's use of
// go-playground/validator struct tags for config validation
// (pkg/bulk-clone/bulk_clone_config.go).
func structValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInstance = validator.New()
		_ = validatorInstance.RegisterValidation("identifier", func(fl validator.FieldLevel) bool {
			return identifier.Pattern.MatchString(fl.Field().String())
		})
	})
	return validatorInstance
}

// validateJob runs struct-tag validation on a decoded Job.
func validateJob(job *Job) error {
	if err := structValidator().Struct(job); err != nil {
		return fmt.Errorf("job %q: %w", job.Name, err)
	}
	return nil
}
