// Package nn implements the building blocks of a feed-forward network.
//
// This package provides:
//   - Activation: closed set of elementwise nonlinearities (plus softmax for
//     classification outputs) with their derivatives
//   - Parameter: a trainable matrix with its gradient slot
//   - Dense: fully connected layer with cached forward state and manual
//     backpropagation
//   - Loss functions: MSE and cross-entropy
//   - Initialization: Xavier and He
//
// Matrices use the "batch of column vectors" layout: a layer with n inputs
// consumes an n×batch matrix and produces an m×batch matrix.
package nn
