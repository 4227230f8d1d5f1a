package snark

import "testing"

func TestBuildHeaderV2ValidatesRoundTrip(t *testing.T) {
	info, ok := LookupSchema("membership", 2)
	if !ok {
		t.Fatalf("LookupSchema did not find membership v2")
	}
	header := BuildHeaderV2(info)
	payload := append(append([]byte(nil), header...), []byte("witness-bytes")...)

	rest, err := validateHeader(info, payload)
	if err != nil {
		t.Fatalf("validateHeader: %v", err)
	}
	if string(rest) != "witness-bytes" {
		t.Fatalf("validateHeader returned %q, want %q", rest, "witness-bytes")
	}
}

func TestValidateHeaderV1(t *testing.T) {
	info, ok := LookupSchema("membership", 1)
	if !ok {
		t.Fatalf("LookupSchema did not find membership v1")
	}
	payload := append([]byte{1}, []byte("abc")...)
	rest, err := validateHeader(info, payload)
	if err != nil {
		t.Fatalf("validateHeader: %v", err)
	}
	if string(rest) != "abc" {
		t.Fatalf("validateHeader returned %q, want %q", rest, "abc")
	}
}

func TestValidateHeaderRejectsWrongV1Byte(t *testing.T) {
	info, _ := LookupSchema("membership", 1)
	if _, err := validateHeader(info, []byte{0, 'x'}); err == nil {
		t.Fatalf("validateHeader accepted a v1 header with the wrong marker byte")
	}
}

func TestValidateHeaderRejectsShortPayload(t *testing.T) {
	info, _ := LookupSchema("membership", 2)
	if _, err := validateHeader(info, []byte{1, 2, 3}); err == nil {
		t.Fatalf("validateHeader accepted a payload shorter than the header")
	}
}

func TestValidateHeaderRejectsMismatchedStatementTag(t *testing.T) {
	membershipInfo, _ := LookupSchema("membership", 2)
	unlinkInfo, _ := LookupSchema("unlinkability", 2)

	// Header built for unlinkability's tags, checked against membership's schema info.
	header := BuildHeaderV2(unlinkInfo)
	if _, err := validateHeader(membershipInfo, header); err == nil {
		t.Fatalf("validateHeader accepted a header whose statement_type tag does not match the table")
	}
}

func TestHeaderLenUnsupportedVersion(t *testing.T) {
	if headerLen(99) != -1 {
		t.Fatalf("headerLen(99) = %d, want -1", headerLen(99))
	}
}
