package services

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Scaler is a standard scaler: (x - mean) / scale.
type Scaler struct {
	Mean  []float64 `json:"mean" msgpack:"mean"`
	Scale []float64 `json:"scale" msgpack:"scale"`
}

// Layer is a dense layer with weights laid out out×in.
type Layer struct {
	Weights    [][]float64 `json:"weights" msgpack:"weights"`
	Biases     []float64   `json:"biases" msgpack:"biases"`
	Activation string      `json:"activation" msgpack:"activation"`
}

type denseLayer struct {
	w   *mat.Dense
	b   *mat.VecDense
	act func(float64) float64
}

var activations = map[string]func(float64) float64{
	"":         func(v float64) float64 { return v },
	"identity": func(v float64) float64 { return v },
	"relu":     func(v float64) float64 { return math.Max(0, v) },
	"tanh":     math.Tanh,
	"logistic": func(v float64) float64 { return 1 / (1 + math.Exp(-v)) },
}

type neuralNet struct {
	enc    *encoder
	mean   []float64
	scale  []float64
	layers []denseLayer
	target *Scaler
}

func newNeuralNet(art *Artifact) (Predictor, error) {
	enc, err := newEncoder(art.Features)
	if err != nil {
		return nil, err
	}
	if len(art.Layers) == 0 {
		return nil, fmt.Errorf("artifact has no layers")
	}

	nn := &neuralNet{enc: enc, target: art.Target}

	if art.Scaler != nil {
		if len(art.Scaler.Mean) != enc.width() || len(art.Scaler.Scale) != enc.width() {
			return nil, fmt.Errorf("scaler covers %d/%d columns, want %d",
				len(art.Scaler.Mean), len(art.Scaler.Scale), enc.width())
		}
		nn.mean = art.Scaler.Mean
		nn.scale = art.Scaler.Scale
	}
	if t := art.Target; t != nil && (len(t.Mean) != 1 || len(t.Scale) != 1) {
		return nil, fmt.Errorf("target scaler must have exactly one column")
	}

	in := enc.width()
	for i, l := range art.Layers {
		act, ok := activations[l.Activation]
		if !ok {
			return nil, fmt.Errorf("layer %d: unknown activation %q", i, l.Activation)
		}
		out := len(l.Weights)
		if out == 0 || len(l.Biases) != out {
			return nil, fmt.Errorf("layer %d: %d weight rows, %d biases", i, out, len(l.Biases))
		}

		flat := make([]float64, 0, out*in)
		for r, row := range l.Weights {
			if len(row) != in {
				return nil, fmt.Errorf("layer %d row %d: %d inputs, want %d", i, r, len(row), in)
			}
			flat = append(flat, row...)
		}

		nn.layers = append(nn.layers, denseLayer{
			w:   mat.NewDense(out, in, flat),
			b:   mat.NewVecDense(out, append([]float64(nil), l.Biases...)),
			act: act,
		})
		in = out
	}
	if in != 1 {
		return nil, fmt.Errorf("output layer has %d units, want 1", in)
	}
	return nn, nil
}

func (nn *neuralNet) Predict(row FeatureRow) (float64, error) {
	x := nn.enc.encode(row)
	for i := range x {
		if nn.mean == nil {
			break
		}
		scale := nn.scale[i]
		if scale == 0 {
			scale = 1
		}
		x[i] = (x[i] - nn.mean[i]) / scale
	}

	v := mat.NewVecDense(len(x), x)
	for _, l := range nn.layers {
		r, _ := l.w.Dims()
		next := mat.NewVecDense(r, nil)
		next.MulVec(l.w, v)
		next.AddVec(next, l.b)
		for j := 0; j < r; j++ {
			next.SetVec(j, l.act(next.AtVec(j)))
		}
		v = next
	}

	y := v.AtVec(0)
	if nn.target != nil {
		y = y*nn.target.Scale[0] + nn.target.Mean[0]
	}
	return y, nil
}
