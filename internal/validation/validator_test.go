// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

package validation

import (
	"strings"
	"testing"
)

type testSettings struct {
	UserID     string `validate:"required"`
	CrowdLevel int    `validate:"min=0,max=4"`
	WaitLimit  int    `validate:"min=0"`
}

func TestValidateStructPasses(t *testing.T) {
	s := testSettings{UserID: "u1", CrowdLevel: 2}
	if err := ValidateStruct(&s); err != nil {
		t.Errorf("ValidateStruct() = %v, want nil", err)
	}
}

func TestValidateStructRequired(t *testing.T) {
	err := ValidateStruct(&testSettings{})
	if err == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}

	fields := err.Errors()
	if len(fields) != 1 {
		t.Fatalf("got %d field errors, want 1: %v", len(fields), err)
	}
	fe := fields[0]
	if fe.Field() != "UserID" || fe.Tag() != "required" {
		t.Errorf("field error = (%s, %s), want (UserID, required)", fe.Field(), fe.Tag())
	}
	if !strings.Contains(err.Error(), "UserID is required") {
		t.Errorf("message = %q, want mention of required UserID", err.Error())
	}
}

func TestValidateStructRangeMessages(t *testing.T) {
	err := ValidateStruct(&testSettings{UserID: "u1", CrowdLevel: 9, WaitLimit: -1})
	if err == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}

	fields := err.Errors()
	if len(fields) != 2 {
		t.Fatalf("got %d field errors, want 2: %v", len(fields), err)
	}

	if fields[0].Tag() != "max" || fields[0].Param() != "4" {
		t.Errorf("first error = (%s, %s), want (max, 4)", fields[0].Tag(), fields[0].Param())
	}
	if fields[1].Tag() != "min" || fields[1].Param() != "0" {
		t.Errorf("second error = (%s, %s), want (min, 0)", fields[1].Tag(), fields[1].Param())
	}

	msg := err.Error()
	if !strings.Contains(msg, "CrowdLevel must be at most 4") {
		t.Errorf("message = %q, want max violation text", msg)
	}
	if !strings.Contains(msg, "WaitLimit must be at least 0") {
		t.Errorf("message = %q, want min violation text", msg)
	}
}

func TestGetValidatorIsSingleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator() returned distinct instances")
	}
}
