package coordinator

import "fmt"

// TimeoutError means an expected inbound line did not arrive within the
// caller's timeout.
type TimeoutError struct {
	Waiting string // what the caller was waiting for, for diagnostics
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out waiting for %s", e.Waiting)
}

// UnhandledStatusError means a network command returned a status code
// outside the documented set for that command.
type UnhandledStatusError struct {
	Command string
	Status  byte
}

func (e *UnhandledStatusError) Error() string {
	return fmt.Sprintf("%s: unhandled status 0x%02X", e.Command, e.Status)
}

// NetworkOperationError means a recognised but unsuccessful network
// operation (e.g. permit-join rejected).
type NetworkOperationError struct {
	Command string
	Status  byte
}

func (e *NetworkOperationError) Error() string {
	return fmt.Sprintf("%s failed with status 0x%02X", e.Command, e.Status)
}

// AttributeReadFailure means an attribute-read response carried a
// non-zero ZCL status.
type AttributeReadFailure struct {
	ClusterCode uint16
	AttrCode    uint16
	Status      byte
}

func (e *AttributeReadFailure) Error() string {
	return fmt.Sprintf("read attribute 0x%04X on cluster 0x%04X: status 0x%02X", e.AttrCode, e.ClusterCode, e.Status)
}
