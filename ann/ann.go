/*
Package ann is a feed forward neural network trained by
backpropagation. The whole network lives in one flat float64 backing
array split into three regions: hidden neuron activations, weights
with a bias after each neuron's fan-in, and deltas. Layout of the
weight region, layer major:

	w_j0, w_j1, ..., w_jn, b_j   for each neuron j of each layer

Activation derivatives are taken with respect to the activated output,
so sigmoid' is y*(1-y) and tanh' is 1-y*y.
*/
package ann

import (
	"math/rand"
)

import (
	"github.com/mwehr/binfile/errors"
)

// Network is a fully connected feed forward network. Not safe for
// concurrent use: Forward scribbles on the shared neuron region.
type Network struct {
	layers []int
	// store backs neurons, weights, and deltas contiguously.
	store   []float64
	neurons []float64
	weights []float64
	deltas  []float64
	// per layer offsets into weights and neurons
	wOff []int
	nOff []int

	hidden        func(float64) float64
	hiddenPartial func(float64) float64
	output        func(float64) float64
	outputPartial func(float64) float64
}

// New builds a network from the neuron count of each layer, input
// first. At least an input and an output layer are required. The
// activation defaults to sigmoid everywhere; weights start at zero.
func New(layers ...int) (*Network, error) {
	if len(layers) < 2 {
		return nil, errors.Errorf("need at least 2 layers, got %v", len(layers))
	}
	for l, n := range layers {
		if n < 1 {
			return nil, errors.Errorf("layer %v has %v neurons", l, n)
		}
	}
	neuronN := 0
	weightN := 0
	wOff := make([]int, len(layers))
	nOff := make([]int, len(layers))
	for l := 1; l < len(layers); l++ {
		wOff[l] = weightN
		weightN += layers[l] * (layers[l-1] + 1)
		if l < len(layers)-1 {
			nOff[l] = neuronN
			neuronN += layers[l]
		}
	}
	deltaN := neuronN + layers[len(layers)-1]

	store := make([]float64, neuronN+weightN+deltaN)
	self := &Network{
		layers:  append([]int{}, layers...),
		store:   store,
		neurons: store[:neuronN],
		weights: store[neuronN : neuronN+weightN],
		deltas:  store[neuronN+weightN:],
		wOff:    wOff,
		nOff:    nOff,
	}
	self.SetActivation(Sigmoid, Sigmoid)
	return self, nil
}

// Copy returns an independent network with the same weights and
// activations.
func (self *Network) Copy() *Network {
	cp := *self
	cp.layers = append([]int{}, self.layers...)
	cp.store = append([]float64{}, self.store...)
	neuronN := len(self.neurons)
	weightN := len(self.weights)
	cp.neurons = cp.store[:neuronN]
	cp.weights = cp.store[neuronN : neuronN+weightN]
	cp.deltas = cp.store[neuronN+weightN:]
	cp.wOff = append([]int{}, self.wOff...)
	cp.nOff = append([]int{}, self.nOff...)
	return &cp
}

// InputSize returns the width of the input layer.
func (self *Network) InputSize() int {
	return self.layers[0]
}

// OutputSize returns the width of the output layer.
func (self *Network) OutputSize() int {
	return self.layers[len(self.layers)-1]
}

// Weights exposes the live weight region, biases included. Useful for
// seeding, inspection, and driving the network from an external
// optimizer.
func (self *Network) Weights() []float64 {
	return self.weights
}

// Randomize sets every weight uniformly in [-1, 1) and every bias to
// zero.
func (self *Network) Randomize(rng *rand.Rand) {
	w := 0
	for l := 1; l < len(self.layers); l++ {
		for j := 0; j < self.layers[l]; j++ {
			for i := 0; i < self.layers[l-1]; i++ {
				self.weights[w] = rng.Float64()*2 - 1
				w++
			}
			self.weights[w] = 0
			w++
		}
	}
}

// Forward propagates input through the network into output. Hidden
// activations are kept for a following Backward call.
func (self *Network) Forward(input, output []float64) error {
	if len(input) != self.InputSize() {
		return errors.Errorf("input is %v wide, the network takes %v", len(input), self.InputSize())
	}
	if len(output) != self.OutputSize() {
		return errors.Errorf("output is %v wide, the network yields %v", len(output), self.OutputSize())
	}
	last := len(self.layers) - 1
	x := input
	w := 0
	for l := 1; l < last; l++ {
		y := self.neurons[self.nOff[l] : self.nOff[l]+self.layers[l]]
		for j := range y {
			sum := 0.0
			for i := range x {
				sum += x[i] * self.weights[w]
				w++
			}
			sum += self.weights[w]
			w++
			y[j] = self.hidden(sum)
		}
		x = y
	}
	for j := range output {
		sum := 0.0
		for i := range x {
			sum += x[i] * self.weights[w]
			w++
		}
		sum += self.weights[w]
		w++
		output[j] = self.output(sum)
	}
	return nil
}

// Backward runs one backpropagation step with learning rate rate.
// input and output must be the pair from the Forward call immediately
// before; the hidden activations cached by that call feed the chain
// rule here.
func (self *Network) Backward(input, output, target []float64, rate float64) error {
	if len(input) != self.InputSize() {
		return errors.Errorf("input is %v wide, the network takes %v", len(input), self.InputSize())
	}
	if len(output) != self.OutputSize() || len(target) != self.OutputSize() {
		return errors.Errorf("output and target must be %v wide", self.OutputSize())
	}
	last := len(self.layers) - 1
	neuronN := len(self.neurons)

	// output layer deltas
	dOut := self.deltas[neuronN:]
	for j := range dOut {
		dOut[j] = self.outputPartial(output[j]) * (output[j] - target[j])
	}

	// hidden deltas, walking back toward the input
	dNext := dOut
	for l := last - 1; l >= 1; l-- {
		d := self.deltas[self.nOff[l] : self.nOff[l]+self.layers[l]]
		o := self.neurons[self.nOff[l] : self.nOff[l]+self.layers[l]]
		w := self.weights[self.wOff[l+1]:]
		fan := self.layers[l] + 1
		for j := range d {
			sum := 0.0
			for q := range dNext {
				sum += w[q*fan+j] * dNext[q]
			}
			d[j] = sum * self.hiddenPartial(o[j])
		}
		dNext = d
	}

	// weight updates, front to back
	x := input
	w := 0
	for l := 1; l <= last; l++ {
		var d []float64
		if l == last {
			d = self.deltas[neuronN:]
		} else {
			d = self.deltas[self.nOff[l] : self.nOff[l]+self.layers[l]]
		}
		for j := range d {
			for i := range x {
				self.weights[w] -= rate * x[i] * d[j]
				w++
			}
			self.weights[w] -= rate * d[j]
			w++
		}
		if l < last {
			x = self.neurons[self.nOff[l] : self.nOff[l]+self.layers[l]]
		}
	}
	return nil
}

// numericEpsilon is the half width of the central difference used by
// TrainNumeric.
const numericEpsilon = 1e-8

// TrainNumeric runs one gradient step like Backward but estimates
// every partial by central difference instead of backpropagation.
// It is far slower and exists to sanity check the analytic gradient.
func (self *Network) TrainNumeric(input, target []float64, rate float64) error {
	if len(input) != self.InputSize() {
		return errors.Errorf("input is %v wide, the network takes %v", len(input), self.InputSize())
	}
	if len(target) != self.OutputSize() {
		return errors.Errorf("target must be %v wide", self.OutputSize())
	}
	next := make([]float64, len(self.weights))
	upper := make([]float64, self.OutputSize())
	lower := make([]float64, self.OutputSize())
	for w := range self.weights {
		orig := self.weights[w]

		self.weights[w] = orig + numericEpsilon
		if err := self.Forward(input, upper); err != nil {
			return err
		}
		self.weights[w] = orig - numericEpsilon
		if err := self.Forward(input, lower); err != nil {
			return err
		}
		self.weights[w] = orig

		gradient := (TotalError(upper, target) - TotalError(lower, target)) / (2 * numericEpsilon)
		next[w] = orig - rate*gradient
	}
	copy(self.weights, next)
	return nil
}

// TotalError is the summed squared error 0.5 * sum (o - t)^2.
func TotalError(output, target []float64) float64 {
	total := 0.0
	for i := range output {
		e := output[i] - target[i]
		total += 0.5 * e * e
	}
	return total
}
