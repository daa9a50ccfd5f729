//go:build !amd64 || purego

package quant

func init() {
	quantizeB = quantizeBLanes
	quantizeB32 = quantizeB32Lanes
	quantizeFP = quantizeFPLanes
	quantizeFP32 = quantizeFP32Lanes
	impl = "lanes"
}
