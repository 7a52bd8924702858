package domain

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from    EscrowStatus
		to      EscrowStatus
		allowed bool
	}{
		{EscrowStatusPending, EscrowStatusFunded, true},
		{EscrowStatusPending, EscrowStatusReleased, false},
		{EscrowStatusPending, EscrowStatusDisputed, false},
		{EscrowStatusPending, EscrowStatusRefunded, false},
		{EscrowStatusFunded, EscrowStatusReleased, true},
		{EscrowStatusFunded, EscrowStatusDisputed, true},
		{EscrowStatusFunded, EscrowStatusRefunded, false},
		{EscrowStatusFunded, EscrowStatusPending, false},
		{EscrowStatusDisputed, EscrowStatusReleased, true},
		{EscrowStatusDisputed, EscrowStatusRefunded, true},
		{EscrowStatusDisputed, EscrowStatusFunded, false},
		{EscrowStatusReleased, EscrowStatusRefunded, false},
		{EscrowStatusReleased, EscrowStatusDisputed, false},
		{EscrowStatusRefunded, EscrowStatusReleased, false},
		{EscrowStatusRefunded, EscrowStatusFunded, false},
	}

	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.allowed {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestIsParty(t *testing.T) {
	escrow := &Escrow{ClientID: "user-client", FreelancerID: "user-freelancer"}

	if !escrow.IsParty("user-client") {
		t.Errorf("expected client to be a party")
	}
	if !escrow.IsParty("user-freelancer") {
		t.Errorf("expected freelancer to be a party")
	}
	if escrow.IsParty("user-other") {
		t.Errorf("expected outsider not to be a party")
	}
}
