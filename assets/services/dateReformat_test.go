package services

import "testing"

func TestReformatAcquisitionDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"15/03/2024", "2024-03-15"},
		{"1/3/2024", "2024-03-01"},
		{"01/12/1999", "1999-12-01"},
		// Impossible calendar dates are reassigned, not validated.
		{"31/02/2024", "2024-02-31"},
		{" 15/03/2024 ", "2024-03-15"},
	}
	for _, tc := range cases {
		got := ReformatAcquisitionDate(tc.in)
		if got == nil {
			t.Errorf("ReformatAcquisitionDate(%q) = nil, want %q", tc.in, tc.want)
			continue
		}
		if *got != tc.want {
			t.Errorf("ReformatAcquisitionDate(%q) = %q, want %q", tc.in, *got, tc.want)
		}
	}
}

func TestReformatAcquisitionDateMalformed(t *testing.T) {
	for _, in := range []string{"", "   ", "2024-03-15", "15/03", "15/03/2024/extra", "//"} {
		if got := ReformatAcquisitionDate(in); got != nil {
			t.Errorf("ReformatAcquisitionDate(%q) = %q, want nil", in, *got)
		}
	}
}
