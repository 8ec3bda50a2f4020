// Package layout performs geometric page segmentation.
//
// A page is decomposed into a tree of rectangular regions. The text of each
// region is then segmented into lines, words and paragraphs.
//
// # Page Analysis
//
// The [Analyzer] runs every stage on a page:
//
//	analyzer := layout.NewAnalyzer()
//	page, err := analyzer.AnalyzePage(input)
//	for _, p := range page.Paragraphs() {
//		fmt.Println(p.Text())
//	}
//
// Use one Analyzer per document so styles are interned across its pages.
// [Analyzer.AnalyzeDocument] analyses many pages and reports failing pages
// as [PageError] values without stopping.
//
// # Regions
//
// A [Page] owns its regions in an arena. Each [Region] holds its content in
// a spatial index, refers to its parent by [RegionID] and caches font
// statistics that are invalidated whenever its content, or the content of a
// sub-region, changes. Regions are themselves items, so a sub-region takes
// the place of the content carved out of its parent.
//
// # Stages
//
//   - [GraphicClassifier] marks graphics as separators, containers, math
//     bars or content
//   - [Decomposer] carves containers, column slices, sweep columns and row
//     bands into sub-regions, recursively
//   - [ColumnExtractor] turns vertical whitespace into column boundaries
//   - [LineDetector] and [WordSegmenter] group runs into lines of words
//   - [ParagraphDetector] groups lines into paragraphs and combines
//     overlapping ones
//
// # Configuration
//
// Each stage can be configured independently:
//
//	config := layout.DefaultAnalyzerConfig()
//	config.DecomposeConfig.MaxDepth = 4
//	config.ParagraphConfig.CombineOverlap = 0.7
//	analyzer := layout.NewAnalyzerWithConfig(config)
package layout
