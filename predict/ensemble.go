package predict

import (
	"fmt"
	"runtime"

	ort "github.com/yalue/onnxruntime_go"
)

// Input window of the exported model: 60 minutes x 6 features per minute
// (open, high, low, close, volume, close delta), normalized to the window.
const (
	windowBars  = 60
	featureSize = 6
)

// Ensemble scores snapshots with an ONNX model trained offline. The model
// takes a [1, 60, 6] float32 tensor and outputs a single up-probability.
type Ensemble struct {
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]
}

// InitializeORT points the ONNX runtime at the platform's shared library and
// initializes the environment. Safe to call more than once.
func InitializeORT() error {
	libPath := "/usr/lib/libonnxruntime.so"
	switch runtime.GOOS {
	case "windows":
		libPath = "onnxruntime.dll"
	case "darwin":
		libPath = "libonnxruntime.dylib"
	}
	ort.SetSharedLibraryPath(libPath)
	return ort.InitializeEnvironment()
}

// NewEnsemble loads the ONNX model at modelPath and prepares a session.
// Callers own the returned Ensemble and must Close it.
func NewEnsemble(modelPath string) (*Ensemble, error) {
	_ = InitializeORT()

	inputTensor, err := ort.NewTensor(ort.NewShape(1, windowBars, featureSize),
		make([]float32, windowBars*featureSize))
	if err != nil {
		return nil, fmt.Errorf("predict: create input tensor: %w", err)
	}

	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 1))
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("predict: create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(modelPath,
		[]string{"input"}, []string{"output"},
		[]ort.Value{inputTensor}, []ort.Value{outputTensor}, nil)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("predict: create session: %w", err)
	}

	return &Ensemble{
		session: session,
		input:   inputTensor,
		output:  outputTensor,
	}, nil
}

func (m *Ensemble) Predict(s Snapshot) (float64, error) {
	if m.session == nil {
		return 0, fmt.Errorf("predict: model not available")
	}

	buildFeatures(s, m.input.GetData())

	if err := m.session.Run(); err != nil {
		return 0, fmt.Errorf("predict: inference failed: %w", err)
	}

	p := float64(m.output.GetData()[0])
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return p, nil
}

func (m *Ensemble) Close() {
	if m.session != nil {
		m.session.Destroy()
	}
	if m.input != nil {
		m.input.Destroy()
	}
	if m.output != nil {
		m.output.Destroy()
	}
}

// buildFeatures fills out with the snapshot's last windowBars bars. Prices are
// scaled by the window's first close, volume by the window's max volume.
// Shorter histories are left zero-padded at the front.
func buildFeatures(s Snapshot, out []float32) {
	for i := range out {
		out[i] = 0
	}

	bars := s.Bars
	if len(bars) > windowBars {
		bars = bars[len(bars)-windowBars:]
	}
	if len(bars) == 0 {
		return
	}

	base := float64(bars[0].Close)
	if base <= 0 {
		base = 1
	}
	maxVol := int64(1)
	for _, b := range bars {
		if b.Volume > maxVol {
			maxVol = b.Volume
		}
	}

	offset := windowBars - len(bars)
	prev := bars[0].Close
	for i, b := range bars {
		row := (offset + i) * featureSize
		out[row+0] = float32(float64(b.Open) / base)
		out[row+1] = float32(float64(b.High) / base)
		out[row+2] = float32(float64(b.Low) / base)
		out[row+3] = float32(float64(b.Close) / base)
		out[row+4] = float32(float64(b.Volume) / float64(maxVol))
		out[row+5] = float32(float64(b.Close-prev) / base)
		prev = b.Close
	}
}
