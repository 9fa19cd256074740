package testutil

import (
	"github.com/google/uuid"
)

// Fixed UUIDs for deterministic testing.
var (
	TestUserID        = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	TestLenderID      = uuid.MustParse("00000000-0000-0000-0000-000000000010")
	TestCooperativeID = uuid.MustParse("00000000-0000-0000-0000-000000000011")
	TestFarmerID      = uuid.MustParse("00000000-0000-0000-0000-000000000020")
	TestApplicationID = uuid.MustParse("00000000-0000-0000-0000-000000000030")
)
