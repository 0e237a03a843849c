package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyResultCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		code     string
		expected ResultClass
	}{
		{name: "empty code", code: "", expected: ClassUnknown},
		{name: "unknown sentinel", code: "UNKNOWN", expected: ClassUnknown},
		{name: "unknown sentinel lowercase", code: "unknown", expected: ClassUnknown},
		{name: "plain hit", code: "TCP_HIT", expected: ClassHit},
		{name: "cf hit", code: "TCP_CF_HIT", expected: ClassHit},
		{name: "refresh fail hit", code: "TCP_REF_FAIL_HIT", expected: ClassHit},
		{name: "refresh hit", code: "TCP_REFRESH_HIT", expected: ClassHit},
		{name: "plain miss", code: "TCP_MISS", expected: ClassMiss},
		{name: "refresh miss", code: "TCP_REFRESH_MISS", expected: ClassMiss},
		{name: "client refresh", code: "TCP_CLIENT_REFRESH", expected: ClassClient},
		{name: "error prefix", code: "ERR_CONNECT_FAIL", expected: ClassError},
		{name: "error prefix lowercase", code: "err_dns_fail", expected: ClassError},
		{name: "unclassified code", code: "TCP_DENIED", expected: ClassOther},
		{name: "lowercase hit", code: "tcp_hit", expected: ClassHit},
		{name: "whitespace around code", code: "  TCP_MISS  ", expected: ClassMiss},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, ClassifyResultCode(tt.code))
		})
	}
}

func TestCacheState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hit", CacheHitState.String())
	assert.Equal(t, "miss", CacheMissState.String())
	assert.Equal(t, "absent", CacheAbsent.String())
}

func TestCacheState_MarshalJSON(t *testing.T) {
	t.Parallel()

	out, err := CacheHitState.MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, `"hit"`, string(out))
}
