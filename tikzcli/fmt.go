package tikzcli

import (
	"bytes"
	"context"

	"oss.terrastruct.com/xdefer"

	"oss.terrastruct.com/tikzed/lib/log"
	"oss.terrastruct.com/tikzed/lib/xmain"
	"oss.terrastruct.com/tikzed/tikzformat"
)

func fmtCmd(ctx context.Context, ms *xmain.State, f *flags, args []string) (err error) {
	defer xdefer.Errorf(&err, "failed to fmt")

	if len(args) == 0 {
		return xmain.UsageErrorf("fmt must be passed at least one file to be formatted")
	}

	unformattedCount := 0

	for _, inputPath := range args {
		input, err := ms.ReadPath(inputPath)
		if err != nil {
			return err
		}

		doc, err := tikzformat.Parse(bytes.NewReader(input), nil)
		if err != nil {
			return err
		}

		output := []byte(tikzformat.Format(doc))
		if !bytes.Equal(output, input) {
			if *f.check {
				unformattedCount += 1
				log.Warn(ctx, inputPath)
			} else {
				if err := ms.WritePath(inputPath, output); err != nil {
					return err
				}
			}
		}
	}

	if unformattedCount > 0 {
		pluralFiles := "file"
		if unformattedCount > 1 {
			pluralFiles = "files"
		}

		return xmain.ExitErrorf(1, "found %d unformatted %s. Run tikzed fmt to fix.", unformattedCount, pluralFiles)
	}

	return nil
}
