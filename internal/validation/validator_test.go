package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRequest struct {
	HospitalID   string   `json:"hospital_id" validate:"required,custom_id"`
	BloodType    string   `json:"blood_type" validate:"required,blood_type"`
	DonationType string   `json:"donation_type" validate:"omitempty,donation_type"`
	Urgency      string   `json:"urgency" validate:"required,urgency"`
	Units        int      `json:"units" validate:"min=1"`
	Targets      []string `json:"targets" validate:"dive,blood_type"`
}

func validRequest() testRequest {
	return testRequest{
		HospitalID:   "hosp-1",
		BloodType:    "O-",
		DonationType: "plasma",
		Urgency:      "critical",
		Units:        2,
		Targets:      []string{"AB+", "A-"},
	}
}

func TestValidateStruct(t *testing.T) {
	testCases := []struct {
		name             string
		mutate           func(r *testRequest)
		expectError      bool
		expectedErrorMsg string
	}{
		{
			name:        "Success: All fields are valid",
			mutate:      func(r *testRequest) {},
			expectError: false,
		},
		{
			name:        "Success: Optional donation type omitted",
			mutate:      func(r *testRequest) { r.DonationType = "" },
			expectError: false,
		},
		{
			name:             "Failure: Invalid custom_id with spaces",
			mutate:           func(r *testRequest) { r.HospitalID = "hosp 1" },
			expectError:      true,
			expectedErrorMsg: "field 'hospital_id' must contain only letters, numbers, hyphens, and underscores",
		},
		{
			name:             "Failure: Unknown blood type",
			mutate:           func(r *testRequest) { r.BloodType = "C+" },
			expectError:      true,
			expectedErrorMsg: "field 'blood_type' must be one of A+, A-, B+, B-, AB+, AB-, O+, O-",
		},
		{
			name:             "Failure: Unknown donation type",
			mutate:           func(r *testRequest) { r.DonationType = "bone_marrow" },
			expectError:      true,
			expectedErrorMsg: "field 'donation_type' must be one of whole_blood, platelet, plasma, double_red_cells",
		},
		{
			name:             "Failure: Unknown urgency",
			mutate:           func(r *testRequest) { r.Urgency = "urgent" },
			expectError:      true,
			expectedErrorMsg: "field 'urgency' must be one of critical, high, medium, low",
		},
		{
			name:             "Failure: Missing required field",
			mutate:           func(r *testRequest) { r.Urgency = "" },
			expectError:      true,
			expectedErrorMsg: "field 'urgency' failed on the 'required' tag",
		},
		{
			name:             "Failure: Units below minimum",
			mutate:           func(r *testRequest) { r.Units = 0 },
			expectError:      true,
			expectedErrorMsg: "field 'units' failed on the 'min' tag",
		},
		{
			name:             "Failure: Invalid element in target list",
			mutate:           func(r *testRequest) { r.Targets = []string{"O+", "Q"} },
			expectError:      true,
			expectedErrorMsg: "must be one of A+, A-, B+, B-, AB+, AB-, O+, O-",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			input := validRequest()
			tc.mutate(&input)

			err := ValidateStruct(input)

			if tc.expectError {
				assert.Error(t, err)
				require.IsType(t, &ValidationError{}, err, "error should be of type ValidationError")
				verr := err.(*ValidationError)
				assert.Contains(t, verr.Error(), tc.expectedErrorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateStruct_CollectsEveryField(t *testing.T) {
	err := ValidateStruct(testRequest{HospitalID: "bad id", BloodType: "X", Urgency: "soon", Units: 1})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Errors, 3)
}

func TestValidateStruct_NotAStruct(t *testing.T) {
	err := ValidateStruct("plain string")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Errors, 1)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []string{"error 1", "error 2"},
	}
	assert.Equal(t, "error 1, error 2", err.Error())
}
