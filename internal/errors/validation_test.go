package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/ow-rando/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidationError() {
	ve := errors.NewValidationError()
	ve.AddFieldError("goal", "is required")
	ve.AddFieldErrorf("player", "must be at least %d", 1)

	s.Assert().True(ve.HasErrors())
	s.Assert().Equal("validation failed: goal: is required; player: must be at least 1", ve.Error())

	err := ve.ToError()
	s.Assert().Equal(errors.CodeInvalidArgument, err.Code)
	s.Assert().NotNil(err.Meta["validation_errors"])
}

func (s *ValidationTestSuite) TestValidationBuilder() {
	vb := errors.NewValidationBuilder()
	vb.Field("seed", "is required").
		Fieldf("player", "must be between %d and %d", 1, 255).
		RequiredField("goal").
		InvalidField("goal", "not a known victory condition")

	err := vb.Build()
	s.Require().NotNil(err)
	s.Assert().True(errors.IsInvalidArgument(err))
	s.Assert().True(errors.IsConfiguration(err))
}

func (s *ValidationTestSuite) TestValidationBuilderNoErrors() {
	vb := errors.NewValidationBuilder()
	s.Assert().Nil(vb.Build())
}

func (s *ValidationTestSuite) TestValidateRequired() {
	testCases := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{"valid value", "song_of_five", false},
		{"empty string", "", true},
		{"whitespace only", "   ", true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			errors.ValidateRequired("goal", tc.value, vb)
			err := vb.Build()
			if tc.shouldErr {
				s.Assert().NotNil(err)
			} else {
				s.Assert().Nil(err)
			}
		})
	}
}

func (s *ValidationTestSuite) TestValidateRange() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("player", 0, 1, 255, vb)
	errors.ValidateRange("concurrency", 4, 1, 64, vb)

	err := vb.Build()
	s.Require().NotNil(err)
	validationErrors := errors.GetMeta(err)["validation_errors"].(map[string][]string)
	s.Assert().Contains(validationErrors["player"][0], "must be between 1 and 255")
	s.Assert().NotContains(validationErrors, "concurrency")
}

func (s *ValidationTestSuite) TestValidateEnum() {
	goals := []string{"song_of_five", "song_of_six"}

	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("goal", "song_of_seven", goals, vb)
	errors.ValidateEnum("fallback_goal", "song_of_six", goals, vb)

	err := vb.Build()
	s.Require().NotNil(err)
	validationErrors := errors.GetMeta(err)["validation_errors"].(map[string][]string)
	s.Assert().Contains(validationErrors["goal"][0], "must be one of: song_of_five, song_of_six")
	s.Assert().NotContains(validationErrors, "fallback_goal")
}
