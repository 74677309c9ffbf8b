package docs

import (
	"encoding/json"
	"testing"
)

func TestSwaggerDocIsValidJSON(t *testing.T) {
	doc := SwaggerInfo.ReadDoc()
	var v map[string]any
	if err := json.Unmarshal([]byte(doc), &v); err != nil {
		t.Fatalf("invalid swagger json: %v", err)
	}
	paths, _ := v["paths"].(map[string]any)
	if _, ok := paths["/api/v1/models"]; !ok {
		t.Fatalf("missing /api/v1/models path")
	}
}
