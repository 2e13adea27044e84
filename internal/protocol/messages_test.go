package protocol

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinylib/msgp/msgp"
)

func TestRequestMessage(t *testing.T) {
	t.Parallel()
	original := &Request{
		Type:     TypeCheck,
		ID:       "req-1",
		Board:    []string{"Ah", "Qd", "8c"},
		Hole:     []string{"Ac", "Kd"},
		Street:   "flop",
		Strategy: "tag",
	}

	data, err := Marshal(original)
	require.NoError(t, err)

	var decoded Request
	require.NoError(t, Unmarshal(data, &decoded))
	assert.Equal(t, *original, decoded)
}

func TestResultMessages(t *testing.T) {
	t.Parallel()

	classify := &ClassifyResult{
		Type:     TypeClassifyResult,
		ID:       "c",
		Street:   "turn",
		Features: []string{"two-pair"},
		Texture:  "two-pair",
		Tier:     "very-scary",
		Wetness:  "dry",
		AceHigh:  true,
		Required: "full-house",
	}
	check := &CheckResult{
		Type:       TypeCheckResult,
		ID:         "k",
		Strategy:   "tight-aggressive",
		Street:     "river",
		Texture:    "none",
		Tier:       "non-scary",
		Required:   "top-pair-top-kicker",
		Score:      "top-pair-top-kicker",
		GoodEnough: true,
	}
	errMsg := NewError("e", CodeInvalidCards, "bad card \"Zz\"")

	for _, msg := range []any{classify, check, errMsg} {
		data, err := Marshal(msg)
		require.NoError(t, err)

		decoded, err := Decode(data)
		require.NoError(t, err)
		assert.Equal(t, msg, decoded)
	}
}

func TestPeekType(t *testing.T) {
	t.Parallel()
	data, err := Marshal(&Request{Type: TypeClassify, ID: "abc", Board: []string{"Ah", "Kd", "2c"}})
	require.NoError(t, err)

	typ, id, err := PeekType(data)
	require.NoError(t, err)
	assert.Equal(t, TypeClassify, typ)
	assert.Equal(t, "abc", id)

	_, _, err = PeekType([]byte{0xc1})
	assert.Error(t, err)
}

func TestUnknownFieldsAreSkipped(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	w := msgp.NewWriter(&buf)
	require.NoError(t, w.WriteMapHeader(3))
	require.NoError(t, w.WriteString("type"))
	require.NoError(t, w.WriteString(TypeClassify))
	require.NoError(t, w.WriteString("extra"))
	require.NoError(t, w.WriteArrayHeader(2))
	require.NoError(t, w.WriteInt(1))
	require.NoError(t, w.WriteInt(2))
	require.NoError(t, w.WriteString("board"))
	require.NoError(t, writeStrings(w, []string{"Ah"}))
	require.NoError(t, w.Flush())

	var req Request
	require.NoError(t, Unmarshal(buf.Bytes(), &req))
	assert.Equal(t, TypeClassify, req.Type)
	assert.Equal(t, []string{"Ah"}, req.Board)
}

func TestUnknownMessageType(t *testing.T) {
	t.Parallel()

	_, err := Marshal(struct{}{})
	assert.ErrorIs(t, err, ErrUnknownMessageType)

	assert.ErrorIs(t, Unmarshal(nil, &struct{}{}), ErrUnknownMessageType)

	data, err := Marshal(&Error{Type: "mystery"})
	require.NoError(t, err)
	_, err = Decode(data)
	assert.ErrorIs(t, err, ErrUnknownMessageType)
}

func TestTruncatedMessage(t *testing.T) {
	t.Parallel()
	data, err := Marshal(&Request{Type: TypeCheck, Board: []string{"Ah", "Kd", "2c"}})
	require.NoError(t, err)

	var req Request
	assert.Error(t, Unmarshal(data[:len(data)-2], &req))
}

func TestMarshalConcurrent(t *testing.T) {
	t.Parallel()
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			want := &Request{Type: TypeClassify, ID: fmt.Sprintf("req-%d", i), Board: []string{"Ah", "Kd", "2c"}}
			data, err := Marshal(want)
			if !assert.NoError(t, err) {
				return
			}
			var got Request
			if assert.NoError(t, Unmarshal(data, &got)) {
				assert.Equal(t, want.ID, got.ID)
			}
		}()
	}
	wg.Wait()
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()
	err := NewError("1", CodeBadRequest, "missing board")
	assert.Equal(t, "bad_request: missing board", err.Error())
	assert.Equal(t, TypeError, err.Type)
}

func TestOversizedArrayRejected(t *testing.T) {
	t.Parallel()
	// {"board": [<4294967295 elements>]} with no elements following
	data := []byte{0x81, 0xa5, 'b', 'o', 'a', 'r', 'd', 0xdd, 0xff, 0xff, 0xff, 0xff}

	var req Request
	err := Unmarshal(data, &req)
	require.Error(t, err)
	var arrErr msgp.ArrayError
	assert.ErrorAs(t, err, &arrErr)
	assert.Empty(t, req.Board)

	var res ClassifyResult
	assert.Error(t, Unmarshal([]byte{0x81, 0xa8, 'f', 'e', 'a', 't', 'u', 'r', 'e', 's', 0xdc, 0x00, 0x11}, &res))
}
