package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerive(t *testing.T) {
	cases := []struct {
		name      string
		due, paid int64
		want      Amounts
	}{
		{"nothing paid", 10000, 0, Amounts{0, 10000, "Unpaid"}},
		{"partial", 10000, 2500, Amounts{2500, 7500, "Incomplete"}},
		{"exact", 10000, 10000, Amounts{10000, 0, "Paid"}},
		{"overpaid is capped", 10000, 15000, Amounts{10000, 0, "Paid"}},
		{"negative treated as zero", 10000, -5, Amounts{0, 10000, "Unpaid"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Derive(tc.due, tc.paid))
		})
	}
}

func TestAccumulateKeepsOverpayment(t *testing.T) {
	got := Accumulate(10000, 8000, 5000)
	assert.Equal(t, Amounts{Paid: 13000, Remaining: 0, Status: "Paid"}, got)

	got = Accumulate(10000, 0, 4000)
	assert.Equal(t, Amounts{Paid: 4000, Remaining: 6000, Status: "Incomplete"}, got)
}
