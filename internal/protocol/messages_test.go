package protocol

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/hersh/startris/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stepScheduler struct{}

func (stepScheduler) Arm(time.Duration) {}
func (stepScheduler) Cancel()           {}

func startedSnapshot(t *testing.T) game.Snapshot {
	t.Helper()
	e := game.NewEngine(stepScheduler{}, game.WithSource(game.NewPieceGenerator(5)))
	e.Start()
	e.HardDrop()
	return e.Snapshot()
}

func TestSnapshotPayloadRoundTrip(t *testing.T) {
	snap := startedSnapshot(t)

	data, err := json.Marshal(Envelope{Type: MsgSnapshot, Payload: NewSnapshotPayload(snap)})
	require.NoError(t, err)

	env, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, MsgSnapshot, env.Type)

	var payload SnapshotPayload
	require.NoError(t, env.Into(&payload))
	assert.Equal(t, "running", payload.State)
	assert.Equal(t, int64(800), payload.IntervalMS)

	got, err := payload.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, snap.Cells, got.Cells)
	assert.Equal(t, snap.Active, got.Active)
	assert.Equal(t, snap.Ghost, got.Ghost)
	assert.Equal(t, snap.ActiveColor, got.ActiveColor)
	assert.Equal(t, snap.Next, got.Next)
	assert.Equal(t, snap.NextShape, got.NextShape)
	assert.Equal(t, snap.Score, got.Score)
	assert.Equal(t, snap.Interval, got.Interval)
	assert.Equal(t, snap.State, got.State)
}

func TestSnapshotPayloadValidation(t *testing.T) {
	good := NewSnapshotPayload(startedSnapshot(t))

	bad := good
	bad.Width = 0
	_, err := bad.Snapshot()
	assert.Error(t, err)

	bad = good
	bad.Board = bad.Board[:10]
	_, err = bad.Snapshot()
	assert.Error(t, err)

	bad = good
	bad.State = "exploded"
	_, err = bad.Snapshot()
	assert.Error(t, err)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode([]byte("not json"))
	assert.Error(t, err)

	_, err = Decode([]byte(`{"payload": {}}`))
	assert.Error(t, err, "missing type")

	env, err := Decode([]byte(`{"type": "join"}`))
	require.NoError(t, err)
	var join JoinPayload
	assert.Error(t, env.Into(&join), "empty payload")
}

func TestCommandPayloadWireNames(t *testing.T) {
	data, err := json.Marshal(Envelope{Type: MsgCommand, Payload: CommandPayload{Command: game.CommandHardDrop.String()}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"command","payload":{"command":"hard_drop"}}`, string(data))
}
