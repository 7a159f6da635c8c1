package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/boxdrop/common"
	"github.com/Carmen-Shannon/boxdrop/engine/model"
)

// gltfAnimationExtractorImpl is the implementation of the gltfAnimationExtractor interface.
type gltfAnimationExtractorImpl struct {
	parser gltfParser
	nodes  gltfNodeExtractor
}

// gltfAnimationExtractor converts glTF animations into AnimationClips whose channels
// target scene nodes by name.
type gltfAnimationExtractor interface {
	// ExtractAnimation extracts a single animation by index.
	//
	// Parameters:
	//   - animIndex: the index of the animation in the document
	//
	// Returns:
	//   - *model.AnimationClip: the extracted animation clip
	//   - error: error if extraction fails
	ExtractAnimation(animIndex int) (*model.AnimationClip, error)

	// ExtractAllAnimations extracts every animation from the document, preserving
	// document order so clip indices match the source asset.
	//
	// Returns:
	//   - []*model.AnimationClip: all extracted animation clips
	//   - error: error if extraction fails
	ExtractAllAnimations() ([]*model.AnimationClip, error)
}

var _ gltfAnimationExtractor = &gltfAnimationExtractorImpl{}

// newGLTFAnimationExtractor creates a new animation extractor for a parsed document.
//
// Parameters:
//   - parser: the parser containing a loaded document
//   - nodes: resolves node indices to node names
//
// Returns:
//   - gltfAnimationExtractor: the animation extractor
func newGLTFAnimationExtractor(parser gltfParser, nodes gltfNodeExtractor) gltfAnimationExtractor {
	return &gltfAnimationExtractorImpl{parser: parser, nodes: nodes}
}

func (e *gltfAnimationExtractorImpl) ExtractAnimation(animIndex int) (*model.AnimationClip, error) {
	doc := e.parser.Document()
	if doc == nil {
		return nil, errNoDocument
	}
	if animIndex < 0 || animIndex >= len(doc.Animations) {
		return nil, fmt.Errorf("animation index %d out of range", animIndex)
	}

	anim := &doc.Animations[animIndex]
	name := anim.Name
	if name == "" {
		name = fmt.Sprintf("animation_%d", animIndex)
	}

	// channels are merged per target node; order follows first appearance
	var channels []model.AnimationChannel
	byNode := make(map[string]int)
	var maxTime float32

	for i := range anim.Channels {
		ch := &anim.Channels[i]

		// morph weights and node-less targets are not animated
		if ch.Target.Node == nil || ch.Target.Path == gltfAnimPathWeights {
			continue
		}
		target, ok := e.nodes.NodeName(*ch.Target.Node)
		if !ok {
			return nil, fmt.Errorf("animation %q channel %d: node %d out of range", name, i, *ch.Target.Node)
		}
		if ch.Sampler < 0 || ch.Sampler >= len(anim.Samplers) {
			return nil, fmt.Errorf("animation %q channel %d: invalid sampler index %d", name, i, ch.Sampler)
		}
		sampler := &anim.Samplers[ch.Sampler]

		times, err := e.parser.ReadScalarAccessor(sampler.Input)
		if err != nil {
			return nil, fmt.Errorf("animation %q channel %d: failed to read timestamps: %w", name, i, err)
		}
		if len(times) > 0 && times[len(times)-1] > maxTime {
			maxTime = times[len(times)-1]
		}

		idx, exists := byNode[target]
		if !exists {
			idx = len(channels)
			byNode[target] = idx
			channels = append(channels, model.AnimationChannel{TargetName: target})
		}
		out := &channels[idx]

		interp, knot := gltfSamplerLayout(sampler.Interpolation)

		switch ch.Target.Path {
		case gltfAnimPathTranslation, gltfAnimPathScale:
			values, err := e.parser.ReadVec3Accessor(sampler.Output)
			if err != nil {
				return nil, fmt.Errorf("animation %q channel %d: failed to read %s values: %w", name, i, ch.Target.Path, err)
			}
			keys := make([]model.VectorKeyframe, 0, len(times))
			for j, t := range times {
				if v := j*knot.stride + knot.offset; v < len(values) {
					keys = append(keys, model.VectorKeyframe{Time: t, Value: values[v]})
				}
			}
			if ch.Target.Path == gltfAnimPathTranslation {
				out.PositionKeys, out.PositionInterpolation = keys, interp
			} else {
				out.ScaleKeys, out.ScaleInterpolation = keys, interp
			}

		case gltfAnimPathRotation:
			values, err := e.parser.ReadVec4Accessor(sampler.Output)
			if err != nil {
				return nil, fmt.Errorf("animation %q channel %d: failed to read rotation values: %w", name, i, err)
			}
			keys := make([]model.QuaternionKeyframe, 0, len(times))
			for j, t := range times {
				if v := j*knot.stride + knot.offset; v < len(values) {
					keys = append(keys, model.QuaternionKeyframe{Time: t, Value: common.Normalize4(values[v])})
				}
			}
			out.RotationKeys, out.RotationInterpolation = keys, interp
		}
	}

	return &model.AnimationClip{
		Name:        name,
		Duration:    float64(maxTime),
		DefaultLoop: model.LoopRepeat,
		Channels:    channels,
	}, nil
}

func (e *gltfAnimationExtractorImpl) ExtractAllAnimations() ([]*model.AnimationClip, error) {
	doc := e.parser.Document()
	if doc == nil {
		return nil, errNoDocument
	}

	clips := make([]*model.AnimationClip, len(doc.Animations))
	for i := range doc.Animations {
		clip, err := e.ExtractAnimation(i)
		if err != nil {
			return nil, fmt.Errorf("animation %d: %w", i, err)
		}
		clips[i] = clip
	}
	return clips, nil
}

// gltfKnotLayout locates the value of keyframe j in a sampler output as
// values[j*stride+offset].
type gltfKnotLayout struct {
	stride int
	offset int
}

// gltfSamplerLayout maps a glTF interpolation name to the engine interpolation and
// the output layout. CUBICSPLINE outputs are (in-tangent, value, out-tangent)
// triplets; only the value knots are kept and sampled linearly.
func gltfSamplerLayout(interpolation string) (model.Interpolation, gltfKnotLayout) {
	switch interpolation {
	case gltfInterpolationStep:
		return model.InterpolationStep, gltfKnotLayout{stride: 1}
	case gltfInterpolationCubicSpline:
		return model.InterpolationLinear, gltfKnotLayout{stride: 3, offset: 1}
	default:
		return model.InterpolationLinear, gltfKnotLayout{stride: 1}
	}
}
