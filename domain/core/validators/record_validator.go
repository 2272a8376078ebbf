package validators

import (
	"fmt"
	"strings"

	"graphbrowser/domain/config"
	"graphbrowser/pkg/errors"
)

// RecordValidator validates raw graph records before they are admitted
// into an aggregate. Records arrive from external query backends, so
// every field is checked rather than trusted.
type RecordValidator struct {
	cfg            *config.DomainConfig
	labelMaxLength int
	typeMaxLength  int
	maxLabels      int
	maxProperties  int
}

// NewRecordValidator creates a record validator with default rules
func NewRecordValidator(cfg *config.DomainConfig) *RecordValidator {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &RecordValidator{
		cfg:            cfg,
		labelMaxLength: 255,
		typeMaxLength:  255,
		maxLabels:      50,
		maxProperties:  500,
	}
}

// ValidateNodeRecord validates the fields of a raw node record
func (v *RecordValidator) ValidateNodeRecord(id string, labels []string, props map[string]any) error {
	validationErrors := errors.NewValidationErrors()

	if strings.TrimSpace(id) == "" {
		validationErrors.Add("id", "node id cannot be empty")
	}

	if len(labels) == 0 && !v.cfg.AllowEmptyLabels {
		validationErrors.Add("labels", "node must carry at least one label")
	}
	if len(labels) > v.maxLabels {
		validationErrors.Add("labels", fmt.Sprintf("node cannot carry more than %d labels", v.maxLabels))
	}
	for _, label := range labels {
		if strings.TrimSpace(label) == "" {
			validationErrors.Add("labels", "label cannot be empty")
			break
		}
		if len(label) > v.labelMaxLength {
			validationErrors.Add("labels", fmt.Sprintf("label %q exceeds maximum length of %d", label, v.labelMaxLength))
			break
		}
	}

	if err := v.validateProperties(props); err != nil {
		validationErrors.Add("properties", err.Error())
	}

	if validationErrors.HasErrors() {
		return validationErrors.AsAppError()
	}
	return nil
}

// ValidateRelationshipRecord validates the fields of a raw relationship record
func (v *RecordValidator) ValidateRelationshipRecord(id, relType, startID, endID string, props map[string]any) error {
	validationErrors := errors.NewValidationErrors()

	if strings.TrimSpace(id) == "" {
		validationErrors.Add("id", "relationship id cannot be empty")
	}
	if strings.TrimSpace(relType) == "" {
		validationErrors.Add("type", "relationship type cannot be empty")
	}
	if len(relType) > v.typeMaxLength {
		validationErrors.Add("type", fmt.Sprintf("relationship type exceeds maximum length of %d", v.typeMaxLength))
	}
	if strings.TrimSpace(startID) == "" {
		validationErrors.Add("start_id", "relationship start node id cannot be empty")
	}
	if strings.TrimSpace(endID) == "" {
		validationErrors.Add("end_id", "relationship end node id cannot be empty")
	}

	if err := v.validateProperties(props); err != nil {
		validationErrors.Add("properties", err.Error())
	}

	if validationErrors.HasErrors() {
		return validationErrors.AsAppError()
	}
	return nil
}

func (v *RecordValidator) validateProperties(props map[string]any) error {
	if len(props) > v.maxProperties {
		return fmt.Errorf("record cannot carry more than %d properties", v.maxProperties)
	}
	for key := range props {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("property keys cannot be empty")
		}
	}
	return nil
}
