package analyzer

import "testing"

// TestExtractFeatures tests the lexical structure checks.
func TestExtractFeatures(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		normalized string
		expected   Features
	}{
		{
			name:       "full https url with www",
			normalized: "https://www.google.com",
			expected:   Features{HasHTTPS: true, HasWWW: true, HasProperTLD: true, Length: 22},
		},
		{
			name:       "plain http url",
			normalized: "http://example.com",
			expected:   Features{HasProperTLD: true, Length: 18},
		},
		{
			name:       "schemeless input is not https",
			normalized: "example.com",
			expected:   Features{HasProperTLD: true, Length: 11},
		},
		{
			name:       "bare hostname has no tld shape",
			normalized: "localhost",
			expected:   Features{Length: 9},
		},
		{
			name:       "port after the tld breaks the shape",
			normalized: "https://google.com:443",
			expected:   Features{HasHTTPS: true, Length: 22},
		},
		{
			name:       "tld followed by a path",
			normalized: "https://paypai.net/login",
			expected:   Features{HasHTTPS: true, HasProperTLD: true, Length: 24},
		},
		{
			name:       "long extension is not tld shaped",
			normalized: "http://example.abcdefg",
			expected:   Features{Length: 22},
		},
		{
			name:       "length counts characters",
			normalized: "https://bücher.de",
			expected:   Features{HasHTTPS: true, HasProperTLD: true, Length: 17},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := ExtractFeatures(tc.normalized); got != tc.expected {
				t.Errorf("ExtractFeatures(%q) = %+v, expected %+v", tc.normalized, got, tc.expected)
			}
		})
	}
}

// TestFeaturesSpecs tests the conversion to report specs.
func TestFeaturesSpecs(t *testing.T) {
	t.Parallel()

	specs := Features{HasHTTPS: true, HasWWW: false, HasProperTLD: true, Length: 5}.Specs()
	if specs.Length != 5 {
		t.Errorf("expected length 5, got %d", specs.Length)
	}
	if specs.HasHTTPS.String() != "Detected" {
		t.Errorf("expected Detected, got %s", specs.HasHTTPS)
	}
	if specs.HasWWW.String() != "Missing" {
		t.Errorf("expected Missing, got %s", specs.HasWWW)
	}
	if specs.HasTLD.String() != "Standard" {
		t.Errorf("expected Standard, got %s", specs.HasTLD)
	}
}
