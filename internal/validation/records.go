package validation

import (
	"encoding/json"
	"fmt"

	"github.com/aanand-mishra/student-profiles-api/internal/types"
)

var (
	registrationSchema  = RegistrationSchema()
	resumeDetailsSchema = ResumeDetailsSchema()
)

// Registration validates raw and returns the normalized profile. A returned
// error is either Violations (bad input) or an internal decode failure.
func (v *Validator) Registration(raw map[string]any) (types.Registration, error) {
	var rec types.Registration
	if err := v.into(registrationSchema, raw, &rec); err != nil {
		return types.Registration{}, err
	}
	return rec, nil
}

// ResumeDetails validates raw and returns the normalized resume.
func (v *Validator) ResumeDetails(raw map[string]any) (types.ResumeDetails, error) {
	var rec types.ResumeDetails
	if err := v.into(resumeDetailsSchema, raw, &rec); err != nil {
		return types.ResumeDetails{}, err
	}
	return rec, nil
}

// into validates raw and copies the normalized tree into dst. The tree only
// holds JSON-representable values (time.Time encodes as RFC 3339), so one
// encode/decode round trip is enough to fill the typed record.
func (v *Validator) into(s *Schema, raw map[string]any, dst any) error {
	normalized, violations := v.Validate(s, raw)
	if violations != nil {
		return violations
	}

	data, err := json.Marshal(normalized)
	if err != nil {
		return fmt.Errorf("validation.%s: encode normalized record: %w", s.Name, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("validation.%s: decode normalized record: %w", s.Name, err)
	}
	return nil
}
