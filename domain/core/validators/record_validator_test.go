package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphbrowser/domain/config"
	"graphbrowser/pkg/errors"
)

func TestValidateNodeRecord(t *testing.T) {
	v := NewRecordValidator(nil)

	assert.NoError(t, v.ValidateNodeRecord("n1", []string{"Person"}, map[string]any{"name": "alice"}))

	// the default config tolerates label-less nodes
	assert.NoError(t, v.ValidateNodeRecord("n1", nil, nil))

	err := v.ValidateNodeRecord("  ", []string{"Person"}, nil)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))

	assert.Error(t, v.ValidateNodeRecord("n1", []string{""}, nil))
	assert.Error(t, v.ValidateNodeRecord("n1", []string{strings.Repeat("x", 256)}, nil))
	assert.Error(t, v.ValidateNodeRecord("n1", []string{"Person"}, map[string]any{" ": 1}))
}

func TestValidateNodeRecordRequiresLabelsWhenConfigured(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	cfg.AllowEmptyLabels = false
	v := NewRecordValidator(cfg)

	assert.Error(t, v.ValidateNodeRecord("n1", nil, nil))
	assert.NoError(t, v.ValidateNodeRecord("n1", []string{"Person"}, nil))
}

func TestValidateRelationshipRecord(t *testing.T) {
	v := NewRecordValidator(nil)

	assert.NoError(t, v.ValidateRelationshipRecord("r1", "KNOWS", "n1", "n2", nil))

	assert.Error(t, v.ValidateRelationshipRecord("", "KNOWS", "n1", "n2", nil))
	assert.Error(t, v.ValidateRelationshipRecord("r1", "", "n1", "n2", nil))
	assert.Error(t, v.ValidateRelationshipRecord("r1", "KNOWS", "", "n2", nil))
	assert.Error(t, v.ValidateRelationshipRecord("r1", "KNOWS", "n1", "", nil))

	err := v.ValidateRelationshipRecord("", "", "", "", nil)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}
