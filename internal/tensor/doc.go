// Package tensor holds the matrix helpers shared by the layers and the
// network.
//
// Matrices are gonum *mat.Dense values laid out as a batch of column
// vectors: rows are feature or neuron channels, columns are samples.
// Helpers that take a destination reuse its backing storage whenever its
// capacity allows, so the hot training loop does not allocate once the
// buffers have reached their steady-state size.
package tensor
