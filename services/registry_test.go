package services

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelRegistryRegister(t *testing.T) {
	reg := NewModelRegistry(nil)
	model := constantPrice(4200)
	reg.Register(XGBoost, model)

	got, err := reg.Get(XGBoost)
	require.NoError(t, err)
	price, _ := got.Predict(FeatureRow{})
	assert.Equal(t, 4200.0, price)

	_, err = reg.Get(NeuralNet)
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "Neural Network", loadErr.Model)
}

func TestModelRegistryRetriesFailedLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rf.json")
	reg := NewModelRegistry(map[ModelKind]string{RandomForest: path})

	_, err := reg.Get(RandomForest)
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, path, loadErr.Path)

	data, err := json.Marshal(&Artifact{Kind: RandomForest, Features: []string{"duration_mins"}, Trees: []Tree{stumpOn(100, 3000, 6000)}})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	first, err := reg.Get(RandomForest)
	require.NoError(t, err)
	second, err := reg.Get(RandomForest)
	require.NoError(t, err)
	assert.Same(t, first.(*treeEnsemble), second.(*treeEnsemble))
}

func TestModelRegistryStatus(t *testing.T) {
	reg := NewModelRegistry(map[ModelKind]string{
		RandomForest: filepath.Join("..", "models", "pipeline_rf.json"),
		XGBoost:      filepath.Join(t.TempDir(), "missing.json"),
	})

	status := reg.Status()
	require.Len(t, status, 3)

	assert.Equal(t, RandomForest, status[0].Kind)
	assert.True(t, status[0].Loaded)
	assert.Empty(t, status[0].Error)

	assert.False(t, status[1].Loaded)
	assert.Contains(t, status[1].Error, "XGBoost")

	assert.False(t, status[2].Loaded)
	assert.Equal(t, "Neural Network", status[2].Label)
}

func TestModelRegistryCachedDoesNotLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xgb.json")
	reg := NewModelRegistry(map[ModelKind]string{XGBoost: path})
	reg.Register(RandomForest, constantPrice(5000))

	cached := reg.Cached()
	require.Len(t, cached, 3)
	assert.True(t, cached[0].Loaded)
	assert.False(t, cached[1].Loaded)
	assert.Equal(t, path, cached[1].Path)

	// an artifact appearing on disk is not picked up until something calls Get
	data, err := json.Marshal(&Artifact{Kind: XGBoost, Features: []string{"duration_mins"}, BaseScore: 9000, Trees: []Tree{stumpOn(100, -50, 50)}})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	assert.False(t, reg.Cached()[1].Loaded)

	_, err = reg.Get(XGBoost)
	require.NoError(t, err)
	assert.True(t, reg.Cached()[1].Loaded)
}
