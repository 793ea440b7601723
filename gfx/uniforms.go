package gfx

import (
	"errors"
	"fmt"
)

// UniformData maps uniform names to values for SetUniforms.
//
// Scalars may be float32, float64, int, int32, uint32 or bool; vectors,
// arrays and matrices are []float32, []float64, []int or []int32 holding the
// flat component sequence (matrices column-major).
type UniformData map[string]any

// SetUniforms uploads every value in data whose name is among the resolved
// uniforms, using the setter implied by the uniform's type. Resolved
// uniforms missing from data are left untouched, so a frame may update only
// what changed. Values of an unsupported Go type are skipped and reported
// in the returned error; the other uniforms are still set.
//
// The program owning the uniforms must be current.
func SetUniforms(gl GL, uniforms ProgramUniforms, data UniformData) error {
	var errs []error
	for _, u := range uniforms {
		v, ok := data[u.Name]
		if !ok || v == nil {
			continue
		}
		if err := setUniform(gl, u, v); err != nil {
			errs = append(errs, fmt.Errorf("uniform %q (%s): %w", u.Name, u.Type, err))
		}
	}
	return errors.Join(errs...)
}

func setUniform(gl GL, u UniformBinding, v any) error {
	loc := u.Location
	switch u.Type {
	case UniformBool:
		b, err := truthy(v)
		if err != nil {
			return err
		}
		var i int32
		if b {
			i = 1
		}
		gl.Uniform1i(loc, i)
	case UniformFloat:
		f, err := scalarFloat(v)
		if err != nil {
			return err
		}
		gl.Uniform1f(loc, f)
	case UniformInt, UniformSampler2D:
		i, err := scalarInt(v)
		if err != nil {
			return err
		}
		gl.Uniform1i(loc, i)
	case UniformVec2, UniformVec3, UniformVec4, UniformFloatArray:
		fs, err := floats(v)
		if err != nil {
			return err
		}
		switch u.Type {
		case UniformVec2:
			gl.Uniform2fv(loc, fs)
		case UniformVec3:
			gl.Uniform3fv(loc, fs)
		case UniformVec4:
			gl.Uniform4fv(loc, fs)
		default:
			gl.Uniform1fv(loc, fs)
		}
	case UniformIVec2, UniformIVec3, UniformIVec4, UniformIntArray:
		is, err := ints(v)
		if err != nil {
			return err
		}
		switch u.Type {
		case UniformIVec2:
			gl.Uniform2iv(loc, is)
		case UniformIVec3:
			gl.Uniform3iv(loc, is)
		case UniformIVec4:
			gl.Uniform4iv(loc, is)
		default:
			gl.Uniform1iv(loc, is)
		}
	case UniformMat2, UniformMat3, UniformMat4,
		UniformMat2x3, UniformMat3x2, UniformMat2x4,
		UniformMat4x2, UniformMat3x4, UniformMat4x3:
		m, err := floats(v)
		if err != nil {
			return err
		}
		setMatrix(gl, u.Type, loc, m)
	default:
		return fmt.Errorf("unknown uniform type %d", uint8(u.Type))
	}
	return nil
}

// setMatrix always passes transpose=false: data is column-major.
func setMatrix(gl GL, t Utype, loc Uniform, m []float32) {
	switch t {
	case UniformMat2:
		gl.UniformMatrix2fv(loc, false, m)
	case UniformMat3:
		gl.UniformMatrix3fv(loc, false, m)
	case UniformMat4:
		gl.UniformMatrix4fv(loc, false, m)
	case UniformMat2x3:
		gl.UniformMatrix2x3fv(loc, false, m)
	case UniformMat3x2:
		gl.UniformMatrix3x2fv(loc, false, m)
	case UniformMat2x4:
		gl.UniformMatrix2x4fv(loc, false, m)
	case UniformMat4x2:
		gl.UniformMatrix4x2fv(loc, false, m)
	case UniformMat3x4:
		gl.UniformMatrix3x4fv(loc, false, m)
	case UniformMat4x3:
		gl.UniformMatrix4x3fv(loc, false, m)
	}
}

func truthy(v any) (bool, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case float32:
		return x != 0, nil
	case float64:
		return x != 0, nil
	case int:
		return x != 0, nil
	case int32:
		return x != 0, nil
	case uint32:
		return x != 0, nil
	}
	return false, fmt.Errorf("unsupported value type %T", v)
}

func scalarFloat(v any) (float32, error) {
	switch x := v.(type) {
	case float32:
		return x, nil
	case float64:
		return float32(x), nil
	case int:
		return float32(x), nil
	case int32:
		return float32(x), nil
	case uint32:
		return float32(x), nil
	}
	return 0, fmt.Errorf("unsupported value type %T", v)
}

func scalarInt(v any) (int32, error) {
	switch x := v.(type) {
	case int:
		return int32(x), nil
	case int32:
		return x, nil
	case uint32:
		return int32(x), nil
	case float32:
		return int32(x), nil
	case float64:
		return int32(x), nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("unsupported value type %T", v)
}

type number interface {
	~float32 | ~float64 | ~int | ~int32 | ~uint32
}

func convert[T, S number](in []S) []T {
	out := make([]T, len(in))
	for i, n := range in {
		out[i] = T(n)
	}
	return out
}

// floats accepts every scalar and slice kind of UniformData.
func floats(v any) ([]float32, error) {
	switch x := v.(type) {
	case []float32:
		return x, nil
	case []float64:
		return convert[float32](x), nil
	case []int:
		return convert[float32](x), nil
	case []int32:
		return convert[float32](x), nil
	case float32, float64, int, int32, uint32:
		f, _ := scalarFloat(x)
		return []float32{f}, nil
	}
	return nil, fmt.Errorf("unsupported value type %T", v)
}

// ints accepts every scalar and slice kind of UniformData; floats truncate
// toward zero.
func ints(v any) ([]int32, error) {
	switch x := v.(type) {
	case []int32:
		return x, nil
	case []int:
		return convert[int32](x), nil
	case []float32:
		return convert[int32](x), nil
	case []float64:
		return convert[int32](x), nil
	case int, int32, uint32, float32, float64:
		n, _ := scalarInt(x)
		return []int32{n}, nil
	}
	return nil, fmt.Errorf("unsupported value type %T", v)
}
