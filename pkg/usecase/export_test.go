package usecase

// DecodeTimeframe is exported for testing
var DecodeTimeframe = decodeTimeframe
