package curve

import (
	"bytes"

	"github.com/guptarohit/asciigraph"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
	"github.com/wavefan/wavefan/cmd/global"
	"github.com/wavefan/wavefan/internal/configuration"
	"github.com/wavefan/wavefan/internal/curves"
	"github.com/wavefan/wavefan/internal/ui"
)

const graphSteps = 100

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the configured speed curve(s) to console",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		configPath := configuration.DetectConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()

		if err = configuration.Validate(); err != nil {
			ui.Fatal(err.Error())
		}

		for idx, curveConf := range configuration.CurrentConfig.Curves {
			if idx > 0 {
				ui.Printfln("")
				ui.Printfln("")
			}

			curve, err := curves.NewSpeedCurve(curveConf)
			if err != nil {
				return err
			}

			var curveType string
			var graphValues []float64
			switch curve.(type) {
			case *curves.PointsSpeedCurve:
				curveType = "Points"
				graphValues = plotPoints(curveConf.Points.Points)
			case *curves.FunctionSpeedCurve:
				curveType = "Functional"
			default:
				curveType = "Unknown"
			}

			// print table
			tab := table.Table{
				Headers: []string{"ID", "Type"},
				Rows: [][]string{
					{curve.GetId(), curveType},
				},
			}
			var buf bytes.Buffer
			tableErr := tab.WriteTable(&buf, &table.Config{
				ShowIndex:       false,
				Color:           !global.NoColor,
				AlternateColors: true,
				TitleColorCode:  ansi.ColorCode("white+buf"),
				AltColorCodes: []string{
					ansi.ColorCode("white"),
					ansi.ColorCode("white:236"),
				},
			})
			if tableErr != nil {
				panic(tableErr)
			}
			tableString := buf.String()
			ui.Printfln(tableString)

			if graphValues == nil {
				continue
			}

			caption := "Duty / Input"
			graph := asciigraph.Plot(graphValues, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption(caption))
			ui.Printfln(graph)
		}

		return nil
	},
}

// plotPoints samples the interpolated curve across its input range
func plotPoints(points []configuration.CurvePoint) []float64 {
	if len(points) == 0 {
		return nil
	}

	start := points[0].Input
	stop := points[len(points)-1].Input
	if stop <= start {
		return []float64{points[0].Duty}
	}

	step := (stop - start) / graphSteps
	values := make([]float64, 0, graphSteps+1)
	for i := 0; i <= graphSteps; i++ {
		values = append(values, curves.EvaluatePoints(points, start+float64(i)*step))
	}
	return values
}

func init() {
	Command.AddCommand(listCmd)
}
