// Package utils provides common helpers shared by the reconcilers.
// It includes strict attribute value conversion and the BigInt column type used
// for financial quantities.
package utils
