package ann

import (
	"math"
)

import (
	"github.com/mwehr/binfile/errors"
)

// Activation names one of the built in activation functions.
type Activation int

const (
	Identity Activation = iota
	Binary
	Sigmoid
	ReLU
	ELU
	LeakyReLU
	Tanh
)

const (
	eluAlpha   = 0.2
	lreluAlpha = 0.2
)

// activations maps each Activation to its function and the derivative
// taken with respect to the activated output.
var activations = [...][2]func(float64) float64{
	Identity:  {identity, identityPartial},
	Binary:    {binary, binaryPartial},
	Sigmoid:   {sigmoid, sigmoidPartial},
	ReLU:      {relu, reluPartial},
	ELU:       {elu, eluPartial},
	LeakyReLU: {lrelu, lreluPartial},
	Tanh:      {tanhAct, tanhPartial},
}

// SetActivation picks the activation for the hidden layers and the
// output layer.
func (self *Network) SetActivation(hidden, output Activation) error {
	if hidden < 0 || int(hidden) >= len(activations) {
		return errors.Errorf("unknown hidden activation %v", hidden)
	}
	if output < 0 || int(output) >= len(activations) {
		return errors.Errorf("unknown output activation %v", output)
	}
	self.hidden = activations[hidden][0]
	self.hiddenPartial = activations[hidden][1]
	self.output = activations[output][0]
	self.outputPartial = activations[output][1]
	return nil
}

func identity(x float64) float64 { return x }

func identityPartial(float64) float64 { return 1 }

func binary(x float64) float64 {
	if x > 0 {
		return 1
	}
	return 0
}

func binaryPartial(float64) float64 { return 0 }

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func sigmoidPartial(y float64) float64 {
	return y * (1 - y)
}

func relu(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

func reluPartial(y float64) float64 {
	if y > 0 {
		return 1
	}
	return 0
}

func elu(x float64) float64 {
	if x > 0 {
		return x
	}
	return eluAlpha * math.Expm1(x)
}

func eluPartial(y float64) float64 {
	if y > 0 {
		return 1
	}
	return y + eluAlpha
}

func lrelu(x float64) float64 {
	if x > 0 {
		return x
	}
	return lreluAlpha * x
}

func lreluPartial(y float64) float64 {
	if y > 0 {
		return 1
	}
	return lreluAlpha
}

func tanhAct(x float64) float64 {
	return math.Tanh(x)
}

func tanhPartial(y float64) float64 {
	return 1 - y*y
}
