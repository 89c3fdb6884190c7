package vitrine_test

import (
	"context"
	"fmt"

	"github.com/aretw0/vitrine"
)

func ExamplePreview() {
	ctx := context.Background()

	fmt.Println(vitrine.Preview(ctx, `<TextBlock Text="Hi"/>`, true).Status())
	fmt.Println(vitrine.Preview(ctx, `<SolidColorBrush Color="Red"/>`, true).Status())
	fmt.Println(vitrine.Preview(ctx, `<TextBlock Text="Hi"/>`, false).Status())
	fmt.Printf("%q\n", vitrine.Preview(ctx, "   ", true).Status())
	// Output:
	// Rendered: TextBlock
	// Parsed: SolidColorBrush (non-visual)
	// Error
	// ""
}
