package sessionRepo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/ajmal7799/FitStack-sub001/models"
)

func setStage(t *testing.T, pipeline []bson.D) bson.D {
	t.Helper()
	require.Len(t, pipeline, 1, "join update is a single pipeline stage")
	require.Equal(t, "$set", pipeline[0][0].Key)
	stage, ok := pipeline[0][0].Value.(bson.D)
	require.True(t, ok)
	return stage
}

func field(t *testing.T, d bson.D, key string) interface{} {
	t.Helper()
	for _, e := range d {
		if e.Key == key {
			return e.Value
		}
	}
	t.Fatalf("field %q not in document", key)
	return nil
}

func condBranches(t *testing.T, v interface{}) (cond bson.D, then, els interface{}) {
	t.Helper()
	d, ok := v.(bson.D)
	require.True(t, ok)
	require.Equal(t, "$cond", d[0].Key)
	args, ok := d[0].Value.(bson.A)
	require.True(t, ok)
	require.Len(t, args, 3)
	cond, ok = args[0].(bson.D)
	require.True(t, ok)
	return cond, args[1], args[2]
}

func TestJoinPipeline_SetsCallersFlagOnly(t *testing.T) {
	now := time.Now()

	userStage := setStage(t, joinPipeline(ParticipantUser, now))
	assert.Equal(t, true, field(t, userStage, "userJoined"))

	trainerStage := setStage(t, joinPipeline(ParticipantTrainer, now))
	assert.Equal(t, true, field(t, trainerStage, "trainerJoined"))
}

func TestJoinPipeline_ActivationRequiresWaitingAndOtherSide(t *testing.T) {
	now := time.Now()
	stage := setStage(t, joinPipeline(ParticipantUser, now))

	cond, then, els := condBranches(t, field(t, stage, "status"))
	assert.Equal(t, string(models.SessionStatusActive), then)
	assert.Equal(t, "$status", els, "status is untouched unless the edge fires")

	// The guard requires the session to still be waiting and the other
	// participant's flag to already be set.
	require.Equal(t, "$and", cond[0].Key)
	guards, ok := cond[0].Value.(bson.A)
	require.True(t, ok)
	require.Len(t, guards, 2)
	statusGuard, ok := guards[0].(bson.D)
	require.True(t, ok)
	require.Equal(t, "$eq", statusGuard[0].Key)
	eqArgs, ok := statusGuard[0].Value.(bson.A)
	require.True(t, ok)
	assert.Equal(t, bson.A{"$status", string(models.SessionStatusWaiting)}, eqArgs)
	assert.Equal(t, "$trainerJoined", guards[1])
}

func TestJoinPipeline_StartedAtSetOnlyOnActivation(t *testing.T) {
	now := time.Now()
	stage := setStage(t, joinPipeline(ParticipantTrainer, now))

	_, then, els := condBranches(t, field(t, stage, "startedAt"))
	assert.Equal(t, now, then)
	assert.Equal(t, "$startedAt", els, "startedAt is written at most once")
}
