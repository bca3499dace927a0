package dbversion

import "testing"

// FuzzParse checks that arbitrary engine version strings never panic the
// parser and that accepted inputs yield non-negative components.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"16.3",
		"9.6.2",
		"PostgreSQL 9.6.2 on x86_64-pc-linux-gnu",
		"8.0.36-log",
		"2.00.040.00.1553674765",
		"10",
		"1.",
		"...",
		"v1.2.3",
		"",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		v, err := Parse(input)
		if err != nil {
			return
		}
		if v.Major < 0 || v.Minor < 0 || v.Patch < 0 {
			t.Errorf("Parse(%q) produced negative component: %+v", input, v)
		}
	})
}
