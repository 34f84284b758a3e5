// Package regressor evaluates the damage regression model: a random forest
// over min-max scaled features, loaded from a JSON artifact. The artifact
// layout mirrors how the training pipeline exports fitted scikit-learn
// models, so the two stay interchangeable.
package regressor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Artifact is the serialized model: feature metadata, the input and output
// scalers, and the flattened trees.
type Artifact struct {
	FeatureNames []string     `json:"feature_names"`
	TargetNames  []string     `json:"target_names"`
	ScalerX      MinMaxScaler `json:"scaler_x"`
	ScalerY      MinMaxScaler `json:"scaler_y"`
	Trees        []Tree       `json:"trees"`
}

// LoadArtifact reads and validates a model artifact from disk.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load artifact: %w", err)
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("load artifact: %w", err)
	}
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("load artifact: %w", err)
	}
	return &a, nil
}

// SaveArtifact writes an artifact as indented JSON, creating parent
// directories as needed.
func SaveArtifact(path string, a *Artifact) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("save artifact: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("save artifact: %w", err)
	}
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("save artifact: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("save artifact: %w", err)
	}
	return nil
}

// Validate checks the artifact's internal consistency.
func (a *Artifact) Validate() error {
	if len(a.FeatureNames) == 0 {
		return fmt.Errorf("artifact has no feature names")
	}
	if len(a.TargetNames) == 0 {
		return fmt.Errorf("artifact has no target names")
	}
	if len(a.ScalerX.Min) != len(a.FeatureNames) || len(a.ScalerX.Max) != len(a.FeatureNames) {
		return fmt.Errorf("scaler_x dimensions do not match %d features", len(a.FeatureNames))
	}
	if len(a.ScalerY.Min) != len(a.TargetNames) || len(a.ScalerY.Max) != len(a.TargetNames) {
		return fmt.Errorf("scaler_y dimensions do not match %d targets", len(a.TargetNames))
	}
	if len(a.Trees) == 0 {
		return fmt.Errorf("artifact has no trees")
	}
	for i, t := range a.Trees {
		if len(t.Nodes) == 0 {
			return fmt.Errorf("tree %d is empty", i)
		}
	}
	return nil
}
