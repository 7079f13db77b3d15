package types

// reserved data tags of the zero contract
const (
	tagDeploySeq = byte(0x01)
)
