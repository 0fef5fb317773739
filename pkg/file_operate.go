package pkg

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// CheckFileExist 检查文件是否存在
func CheckFileExist(filePath string) (bool, error) {
	_, err := os.Lstat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func isStdio(path string) bool {
	return path == "" || path == "-"
}

// ReadInput 读取输入文件, path 为空或 "-" 时读取 stdin
func ReadInput(path string, stdin io.Reader) ([]byte, error) {
	if isStdio(path) {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.Wrap(err, "read stdin")
		}
		return data, nil
	}
	exist, err := CheckFileExist(path)
	if err != nil {
		return nil, errors.Wrap(err, "check file exist error")
	}
	if !exist {
		return nil, errors.Errorf("input file '%s' not exist", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return data, nil
}

// WriteOutput 将 write 的结果写入输出文件, path 为空或 "-" 时写入 stdout
func WriteOutput(path string, stdout io.Writer, write func(io.Writer) error) error {
	if isStdio(path) {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}
