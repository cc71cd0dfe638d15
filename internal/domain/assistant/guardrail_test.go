package assistant

import "testing"

func TestIsMedicalEmergency(t *testing.T) {
	cases := []struct {
		name    string
		message string
		want    bool
	}{
		{"emergency directo", "My dog has an emergency", true},
		{"mayusculas", "EMERGENCY!! my cat ate chocolate", true},
		{"severe como escalacion", "severe vomiting since yesterday", true},
		{"dosage como escalacion", "What dosage of this medicine is safe?", true},
		{"amplio sin escalacion: sick", "my cat seems sick today", false},
		{"amplio sin escalacion: vomiting", "vomiting twice this morning", false},
		{"amplio sin escalacion: bleeding", "small bleeding from a scratch", false},
		{"escalacion sin amplio no existe: severe es ambos", "severe", true},
		{"sin keywords", "how often should I groom a poodle?", false},
		{"vacio", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isMedicalEmergency(tc.message); got != tc.want {
				t.Fatalf("isMedicalEmergency(%q) = %v, want %v", tc.message, got, tc.want)
			}
		})
	}
}
