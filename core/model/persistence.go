package model

import (
	"io"
	"os"

	"github.com/dfelber/regression/pkg/errors"
)

// SaveWeights はモデルの重みをJSONファイルに保存する
//
// 使用例:
//
//	w, _ := reg.Weights()
//	err := model.SaveWeights(w, "model.json")
func SaveWeights(weights *ModelWeights, filename string) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "create %s", filename)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "close %s", filename)
		}
	}()
	return WriteWeights(weights, file)
}

// LoadWeights はJSONファイルからモデルの重みを読み込み、検証する
func LoadWeights(filename string) (*ModelWeights, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", filename)
	}
	defer file.Close()
	return ReadWeights(file)
}

// WriteWeights は検証済みの重みを w に書き込む
func WriteWeights(weights *ModelWeights, w io.Writer) error {
	if err := weights.Validate(); err != nil {
		return err
	}
	data, err := weights.ToJSON()
	if err != nil {
		return err
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return errors.Wrap(err, "write model weights")
	}
	return nil
}

// ReadWeights は r から重みを読み込み、検証する
func ReadWeights(r io.Reader) (*ModelWeights, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read model weights")
	}
	var mw ModelWeights
	if err := mw.FromJSON(data); err != nil {
		return nil, err
	}
	if err := mw.Validate(); err != nil {
		return nil, err
	}
	return &mw, nil
}
