package backend

import (
	"os"
	"testing"

	"github.com/privacyzk/privacyzk/config"
)

func TestNewBackendDefaultsToMock(t *testing.T) {
	ClearBackendType()
	os.Unsetenv(config.BackendEnvVar)

	b, err := NewBackend(FactoryConfig{AllowMock: true})
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}
	if b.GetBackendInfo().Name != "mock" {
		t.Fatalf("NewBackend defaulted to %q, want mock", b.GetBackendInfo().Name)
	}
}

func TestNewBackendOverrideTakesPrecedence(t *testing.T) {
	ClearBackendType()
	SetBackendType("pedersen")
	defer ClearBackendType()

	b, err := NewBackend(FactoryConfig{Override: "mock", AllowMock: true})
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}
	if b.GetBackendInfo().Name != "mock" {
		t.Fatalf("Override did not take precedence over runtime SetBackendType")
	}
}

func TestNewBackendPreferBeatsRuntimeOverride(t *testing.T) {
	SetBackendType("pedersen")
	defer ClearBackendType()

	b, err := NewBackend(FactoryConfig{Prefer: "mock", AllowMock: true})
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}
	if b.GetBackendInfo().Name != "mock" {
		t.Fatalf("Prefer did not take precedence over runtime SetBackendType")
	}
}

func TestNewBackendRuntimeOverrideBeatsEnvVar(t *testing.T) {
	os.Setenv(config.BackendEnvVar, "pedersen")
	defer os.Unsetenv(config.BackendEnvVar)
	SetBackendType("mock")
	defer ClearBackendType()

	b, err := NewBackend(FactoryConfig{AllowMock: true})
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}
	if b.GetBackendInfo().Name != "mock" {
		t.Fatalf("runtime SetBackendType did not take precedence over environment variable")
	}
}

func TestNewBackendMockWithoutAllowMockErrors(t *testing.T) {
	ClearBackendType()
	if _, err := NewBackend(FactoryConfig{Override: "mock"}); err == nil {
		t.Fatalf("NewBackend selected mock backend without AllowMock")
	}
}

func TestNewBackendUnknownNameErrors(t *testing.T) {
	ClearBackendType()
	if _, err := NewBackend(FactoryConfig{Override: "not-a-backend"}); err == nil {
		t.Fatalf("NewBackend accepted an unknown backend name")
	}
}

func TestSetGetClearBackendType(t *testing.T) {
	ClearBackendType()
	if _, ok := GetBackendType(); ok {
		t.Fatalf("GetBackendType reported an override after Clear")
	}
	SetBackendType("mock")
	name, ok := GetBackendType()
	if !ok || name != "mock" {
		t.Fatalf("GetBackendType = (%q, %v), want (\"mock\", true)", name, ok)
	}
	ClearBackendType()
	if _, ok := GetBackendType(); ok {
		t.Fatalf("GetBackendType still reported an override after Clear")
	}
}
