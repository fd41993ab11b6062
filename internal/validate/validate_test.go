package validate

import "testing"

func TestApply(t *testing.T) {
	rules := []Rule{
		{
			Field: "expenseName", Required: true, MinLen: 3, MaxLen: 30,
			RequiredMsg: "Expense Name is Required",
			LengthMsg:   "Expense Name should be in range of 3 to 30 characters",
		},
		{Field: "type", OneOf: []string{"expense", "income"}},
		{Field: "amount", Numeric: true},
		{Field: "email", Email: true},
		{Field: "phone", Digits: 10},
	}

	tests := []struct {
		name       string
		values     map[string]string
		wantFields []string
		wantMsgs   map[string]string
	}{
		{
			name: "all valid",
			values: map[string]string{
				"expenseName": "Coffee beans",
				"type":        "expense",
				"amount":      "4.50",
				"email":       "a@b.com",
				"phone":       "9876543210",
			},
		},
		{
			name:       "missing required",
			values:     map[string]string{},
			wantFields: []string{"expenseName"},
			wantMsgs:   map[string]string{"expenseName": "Expense Name is Required"},
		},
		{
			name:       "too short",
			values:     map[string]string{"expenseName": "ab"},
			wantFields: []string{"expenseName"},
			wantMsgs:   map[string]string{"expenseName": "Expense Name should be in range of 3 to 30 characters"},
		},
		{
			name:       "too long",
			values:     map[string]string{"expenseName": "this expense name is far too long to fit"},
			wantFields: []string{"expenseName"},
		},
		{
			name:       "bad enum",
			values:     map[string]string{"expenseName": "Coffee", "type": "transfer"},
			wantFields: []string{"type"},
		},
		{
			name:       "non numeric amount",
			values:     map[string]string{"expenseName": "Coffee", "amount": "abc"},
			wantFields: []string{"amount"},
		},
		{
			name:       "bad email",
			values:     map[string]string{"expenseName": "Coffee", "email": "nope"},
			wantFields: []string{"email"},
		},
		{
			name:       "bad phone",
			values:     map[string]string{"expenseName": "Coffee", "phone": "12345"},
			wantFields: []string{"phone"},
		},
		{
			name:       "phone with letters",
			values:     map[string]string{"expenseName": "Coffee", "phone": "98765abcde"},
			wantFields: []string{"phone"},
		},
		{
			name:       "multiple failures",
			values:     map[string]string{"type": "transfer", "amount": "x"},
			wantFields: []string{"expenseName", "type", "amount"},
		},
		{
			name:   "optional fields may be empty",
			values: map[string]string{"expenseName": "Coffee"},
		},
		{
			name:       "required whitespace only",
			values:     map[string]string{"expenseName": "   "},
			wantFields: []string{"expenseName"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Apply(tt.values, rules)

			if len(errs) != len(tt.wantFields) {
				t.Fatalf("got %d errors (%v), want %d", len(errs), errs, len(tt.wantFields))
			}

			got := map[string]string{}
			for _, e := range errs {
				got[e.Field] = e.Message
			}
			for _, field := range tt.wantFields {
				if _, ok := got[field]; !ok {
					t.Errorf("missing error for field %q, got %v", field, got)
				}
			}
			for field, msg := range tt.wantMsgs {
				if got[field] != msg {
					t.Errorf("message for %q = %q, want %q", field, got[field], msg)
				}
			}
		})
	}
}

func TestFieldErrorError(t *testing.T) {
	e := FieldError{Field: "email", Message: "Must be a valid email"}
	if e.Error() != "email: Must be a valid email" {
		t.Errorf("Error() = %q", e.Error())
	}
}
