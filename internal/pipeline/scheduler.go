package pipeline

// CreateBatches partitions the sampled frame-index sequence
// 0, sampleRate, 2*sampleRate, ... (up to frameCount) into consecutive
// batches of at most batchSize frames. The batches are deterministic,
// non-overlapping and concatenate to exactly the sampled sequence.
func CreateBatches(frameCount, batchSize, sampleRate int) [][]int {
	return CreateBatchesWindow(0, frameCount, batchSize, sampleRate)
}

// CreateBatchesWindow is CreateBatches over the half-open frame window
// [start, end).
func CreateBatchesWindow(start, end, batchSize, sampleRate int) [][]int {
	if sampleRate < 1 {
		sampleRate = 1
	}
	if start < 0 {
		start = 0
	}
	if end <= start {
		return nil
	}

	sampled := make([]int, 0, (end-start+sampleRate-1)/sampleRate)
	for f := start; f < end; f += sampleRate {
		sampled = append(sampled, f)
	}
	if batchSize < 1 {
		batchSize = len(sampled)
	}

	batches := make([][]int, 0, (len(sampled)+batchSize-1)/batchSize)
	for i := 0; i < len(sampled); i += batchSize {
		j := i + batchSize
		if j > len(sampled) {
			j = len(sampled)
		}
		batches = append(batches, sampled[i:j:j])
	}
	return batches
}
