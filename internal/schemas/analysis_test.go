package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAnalysis(t *testing.T) {
	tests := []struct {
		name      string
		jsonText  string
		wantError bool
	}{
		{
			name: "Complete valid object",
			jsonText: `{
				"overall_score": 85,
				"technical_skills_score": 90,
				"experience_score": 80,
				"domain_score": 70,
				"responsibilities_score": 88,
				"strengths": ["Go", "distributed systems"],
				"gaps": ["no Kubernetes"],
				"missing_keywords": ["k8s"],
				"recommendations": ["add CKA cert"],
				"priority": "HIGH"
			}`,
		},
		{
			name:     "Minimal valid object",
			jsonText: `{"overall_score": 0, "priority": "LOW"}`,
		},
		{
			name:      "Missing overall_score",
			jsonText:  `{"priority": "HIGH"}`,
			wantError: true,
		},
		{
			name:      "Score above range",
			jsonText:  `{"overall_score": 150, "priority": "HIGH"}`,
			wantError: true,
		},
		{
			name:      "Score below range",
			jsonText:  `{"overall_score": -5, "priority": "HIGH"}`,
			wantError: true,
		},
		{
			name:      "Non-integer score",
			jsonText:  `{"overall_score": "85", "priority": "HIGH"}`,
			wantError: true,
		},
		{
			name:      "Strengths not a string array",
			jsonText:  `{"overall_score": 50, "priority": "LOW", "strengths": [1, 2]}`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAnalysis(tt.jsonText)
			if tt.wantError {
				require.Error(t, err)
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				assert.NotEmpty(t, ve.Errors)
				assert.NotEmpty(t, ve.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateKeyInfo(t *testing.T) {
	valid := `{
		"technical_skills": ["Go", "Python"],
		"experience_years": "5+",
		"responsibilities": ["build pipelines"],
		"preferred_qualifications": [],
		"industry": "fintech",
		"salary_range": "$150k-$180k"
	}`
	assert.NoError(t, ValidateKeyInfo(valid))

	assert.Error(t, ValidateKeyInfo(`{"technical_skills": "Go"}`))
}
