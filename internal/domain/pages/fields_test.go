package pages

import "testing"

func testSchema() []Field {
	return []Field{
		{Name: "name", Label: "Name", Type: "text", Required: true},
		{Name: "email", Label: "Email", Type: "email", Required: true},
		{Name: "guests", Label: "Guests", Type: "number"},
		{Name: "size", Label: "Size", Type: "select", Options: []string{"S", "M", "L"}},
		{Name: "newsletter", Label: "Newsletter", Type: "checkbox"},
	}
}

func TestValidateSubmissionAccepts(t *testing.T) {
	data := map[string]interface{}{
		"name":       "Ada",
		"email":      "ada@example.com",
		"guests":     float64(2),
		"size":       "M",
		"newsletter": true,
	}
	if err := ValidateSubmission(testSchema(), data); err != nil {
		t.Fatalf("valid submission rejected: %v", err)
	}
}

func TestValidateSubmissionOptionalFieldsMayBeMissing(t *testing.T) {
	data := map[string]interface{}{
		"name":  "Ada",
		"email": "ada@example.com",
	}
	if err := ValidateSubmission(testSchema(), data); err != nil {
		t.Fatalf("submission without optional fields rejected: %v", err)
	}
}

func TestValidateSubmissionRejects(t *testing.T) {
	cases := []struct {
		name string
		data map[string]interface{}
	}{
		{"unknown key", map[string]interface{}{
			"name": "Ada", "email": "a@b.c", "surprise": "x",
		}},
		{"missing required", map[string]interface{}{
			"email": "a@b.c",
		}},
		{"blank required", map[string]interface{}{
			"name": "   ", "email": "a@b.c",
		}},
		{"number as string", map[string]interface{}{
			"name": "Ada", "email": "a@b.c", "guests": "2",
		}},
		{"checkbox as string", map[string]interface{}{
			"name": "Ada", "email": "a@b.c", "newsletter": "yes",
		}},
		{"invalid select option", map[string]interface{}{
			"name": "Ada", "email": "a@b.c", "size": "XL",
		}},
		{"email without at", map[string]interface{}{
			"name": "Ada", "email": "not-an-email",
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := ValidateSubmission(testSchema(), tc.data); err == nil {
				t.Fatal("expected validation error, got nil")
			}
		})
	}
}

func TestFieldSchemaEmpty(t *testing.T) {
	p := CheckoutPage{Fields: "  "}
	fields, err := p.FieldSchema()
	if err != nil {
		t.Fatal(err)
	}
	if fields != nil {
		t.Fatalf("expected nil schema, got %v", fields)
	}
}

func TestFieldSchemaInvalidJSON(t *testing.T) {
	p := CheckoutPage{ID: 7, Fields: "{broken"}
	if _, err := p.FieldSchema(); err == nil {
		t.Fatal("expected error for broken schema")
	}
}
