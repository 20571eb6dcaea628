package latent

import "gonum.org/v1/gonum/mat"

// Modality selects which part of a paired RNA/ATAC embedding is served.
type Modality int

const (
	// ModalityRNA serves the scRNA-seq embedding only.
	ModalityRNA Modality = iota + 1
	// ModalityATAC serves the scATAC-seq embedding only.
	ModalityATAC
	// ModalityJoint serves both embeddings concatenated column-wise, RNA first.
	ModalityJoint
)

func (m Modality) String() string {
	switch m {
	case ModalityRNA:
		return "rna"
	case ModalityATAC:
		return "atac"
	case ModalityJoint:
		return "joint"
	}
	return "unknown"
}

// ParseModality maps "rna", "atac" or "joint" onto a Modality.
func ParseModality(s string) (Modality, error) {
	for _, m := range []Modality{ModalityRNA, ModalityATAC, ModalityJoint} {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, invalidf("unknown modality %q", s)
}

// PairedData holds the two embeddings of a paired multi-omics dataset, one
// row per cell in both matrices.
type PairedData struct {
	RNA  mat.Matrix
	ATAC mat.Matrix
	// Labels optionally tags each cell (e.g. its time point).
	Labels     []int
	NumClasses int
}

// NewPaired builds an Embedding over the modality mode of data. The paired
// matrices must agree on their number of rows.
func NewPaired(eng *Engine, data PairedData, mode Modality) (*Embedding, error) {
	var x mat.Matrix
	switch mode {
	case ModalityRNA:
		if data.RNA == nil {
			return nil, invalidf("modality %s needs an RNA embedding", mode)
		}
		x = data.RNA
	case ModalityATAC:
		if data.ATAC == nil {
			return nil, invalidf("modality %s needs an ATAC embedding", mode)
		}
		x = data.ATAC
	case ModalityJoint:
		if data.RNA == nil || data.ATAC == nil {
			return nil, invalidf("modality %s needs both embeddings", mode)
		}
		joint, err := HStack(data.RNA, data.ATAC)
		if err != nil {
			return nil, err
		}
		x = joint
	default:
		return nil, invalidf("unknown modality %d", int(mode))
	}
	if data.RNA != nil && data.ATAC != nil {
		rr, _ := data.RNA.Dims()
		ra, _ := data.ATAC.Dims()
		if rr != ra {
			return nil, mismatchf("RNA has %d cells, ATAC has %d", rr, ra)
		}
	}
	return NewEmbedding(eng, x, EmbeddingConfig{Labels: data.Labels, NumClasses: data.NumClasses})
}
