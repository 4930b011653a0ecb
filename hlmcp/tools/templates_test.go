package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customErrors "github.com/awsri/healthlake-mcp/hlmcp/errors"
)

func TestCreatePatientTemplate(t *testing.T) {
	res, err := createPatientTemplate(context.Background(), callReq(map[string]interface{}{
		"family_name": "Doe",
		"given_names": []interface{}{"John", "Q"},
		"gender":      "male",
		"birth_date":  "1970-01-01",
	}))
	require.NoError(t, err)

	var patient map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &patient))
	assert.Equal(t, "Patient", patient["resourceType"])
	assert.Equal(t, "male", patient["gender"])
	assert.Equal(t, "1970-01-01", patient["birthDate"])

	names, ok := patient["name"].([]interface{})
	require.True(t, ok)
	require.Len(t, names, 1)
	name := names[0].(map[string]interface{})
	assert.Equal(t, "Doe", name["family"])
	assert.Equal(t, []interface{}{"John", "Q"}, name["given"])
}

func TestCreatePatientTemplateMinimal(t *testing.T) {
	res, err := createPatientTemplate(context.Background(), callReq(map[string]interface{}{
		"family_name": "Doe",
	}))
	require.NoError(t, err)

	var patient map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &patient))
	assert.NotContains(t, patient, "gender")
	assert.NotContains(t, patient, "birthDate")

	name := patient["name"].([]interface{})[0].(map[string]interface{})
	assert.NotContains(t, name, "given")
}

func TestCreatePatientTemplateMissingFamily(t *testing.T) {
	_, err := createPatientTemplate(context.Background(), callReq(map[string]interface{}{}))
	var vErr *customErrors.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestCreateObservationTemplate(t *testing.T) {
	res, err := createObservationTemplate(context.Background(), callReq(map[string]interface{}{
		"status":            "final",
		"code_system":       "http://loinc.org",
		"code":              "8867-4",
		"display":           "Heart rate",
		"subject_reference": "Patient/p1",
		"value_quantity":    float64(72),
		"value_unit":        "beats/minute",
	}))
	require.NoError(t, err)

	var obs map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &obs))
	assert.Equal(t, "Observation", obs["resourceType"])
	assert.Equal(t, "final", obs["status"])

	coding := obs["code"].(map[string]interface{})["coding"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "http://loinc.org", coding["system"])
	assert.Equal(t, "8867-4", coding["code"])
	assert.Equal(t, "Heart rate", coding["display"])

	assert.Equal(t, "Patient/p1", obs["subject"].(map[string]interface{})["reference"])

	quantity := obs["valueQuantity"].(map[string]interface{})
	assert.Equal(t, float64(72), quantity["value"])
	assert.Equal(t, "beats/minute", quantity["unit"])
}

func TestCreateObservationTemplateNoValue(t *testing.T) {
	res, err := createObservationTemplate(context.Background(), callReq(map[string]interface{}{
		"status":      "preliminary",
		"code_system": "http://loinc.org",
		"code":        "8867-4",
	}))
	require.NoError(t, err)

	var obs map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &obs))
	assert.NotContains(t, obs, "valueQuantity")
	assert.NotContains(t, obs, "subject")
}

func TestCreateObservationTemplateBadValue(t *testing.T) {
	_, err := createObservationTemplate(context.Background(), callReq(map[string]interface{}{
		"status":         "final",
		"code_system":    "http://loinc.org",
		"code":           "8867-4",
		"value_quantity": "seventy-two",
	}))
	var vErr *customErrors.ValidationError
	require.ErrorAs(t, err, &vErr)
}
