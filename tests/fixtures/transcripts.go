// Package fixtures provides reusable test data generators for integration tests.
// This package eliminates test data duplication and ensures consistent test content
// across different test suites.
package fixtures

import (
	"strings"
)

// TranscriptOptions configures the generated transcript content.
type TranscriptOptions struct {
	// Length is the approximate character count (target length, ±10% variance allowed)
	Length int

	// Language specifies the content language ("japanese" or "english")
	Language string

	// IncludeFillers specifies whether to include spoken filler phrases,
	// which real speech-to-text output is full of
	IncludeFillers bool
}

// GenerateTranscript generates transcript content based on the provided options.
// The generated content reads like speech-to-text output from a tech talk and is
// suitable for article generation testing.
//
// Example:
//
//	transcript := GenerateTranscript(TranscriptOptions{
//	    Length: 2000,
//	    Language: "japanese",
//	    IncludeFillers: false,
//	})
func GenerateTranscript(opts TranscriptOptions) string {
	if opts.Language == "english" {
		return generateEnglishTranscript(opts.Length, opts.IncludeFillers)
	}
	return generateJapaneseTranscript(opts.Length, opts.IncludeFillers)
}

// GenerateShortTranscript generates a short transcript (~500 characters),
// roughly what a one-minute clip produces.
func GenerateShortTranscript() string {
	return GenerateTranscript(TranscriptOptions{
		Length:         500,
		Language:       "japanese",
		IncludeFillers: false,
	})
}

// GenerateMediumTranscript generates a medium-length transcript (~2000 characters).
// This is useful for testing typical article generation scenarios.
func GenerateMediumTranscript() string {
	return GenerateTranscript(TranscriptOptions{
		Length:         2000,
		Language:       "japanese",
		IncludeFillers: false,
	})
}

// GenerateLongTranscript generates a long transcript (~12000 characters).
// Long enough to cross the prompt truncation threshold in the generators.
func GenerateLongTranscript() string {
	return GenerateTranscript(TranscriptOptions{
		Length:         12000,
		Language:       "japanese",
		IncludeFillers: false,
	})
}

// GenerateTranscriptWithFillers generates a transcript sprinkled with spoken
// filler phrases. This is useful for testing that generation handles raw,
// unpolished speech-to-text output.
func GenerateTranscriptWithFillers() string {
	return GenerateTranscript(TranscriptOptions{
		Length:         2000,
		Language:       "japanese",
		IncludeFillers: true,
	})
}

// generateJapaneseTranscript generates spoken-style Japanese transcript content.
func generateJapaneseTranscript(targetLength int, includeFillers bool) string {
	// 講演の文字起こしを模した話し言葉の文
	baseSentences := []string{
		"今日は人工知能の最新動向についてお話ししたいと思います。",
		"機械学習のモデルというのは大量のデータからパターンを学習していくわけです。",
		"深層学習は画像認識とか自然言語処理の分野でかなり良い結果を出しています。",
		"ニューラルネットワークは人間の脳の仕組みを参考にした計算モデルなんですね。",
		"データの前処理がモデルの精度に大きく影響するというのはよく言われる話です。",
		"クラウド上でGPUを借りれば個人でも大規模なモデルを学習できる時代になりました。",
		"音声認識の精度もここ数年で驚くほど向上しています。",
		"動画の内容を自動で文字に起こして記事にするというのも現実的になってきました。",
		"大規模言語モデルは文章の要約や生成を得意としています。",
		"プロンプトの書き方次第で出力の品質が大きく変わるという点には注意が必要です。",
		"APIの利用料金はトークン数に応じて課金されるので入力の長さには気を付けましょう。",
		"実運用ではリトライやタイムアウトの設計が意外と重要になってきます。",
		"外部サービスに依存する処理は障害時の振る舞いを決めておくことが大切です。",
		"ここまでの内容について質問があればコメント欄にお願いします。",
		"それでは次のトピックに進みたいと思います。",
	}

	fillerSentences := []string{
		"えーと、ちょっと話が逸れてしまいましたね。",
		"まあ、そういうわけなんですけれども。",
		"あのー、ここは少し難しいところなんですが。",
		"はい、ということで次に行きます。",
		"うーん、どう説明したらいいかな。",
	}

	return buildTranscript(baseSentences, fillerSentences, targetLength, includeFillers)
}

// generateEnglishTranscript generates spoken-style English transcript content.
func generateEnglishTranscript(targetLength int, includeFillers bool) string {
	baseSentences := []string{
		"Today I want to talk about the latest trends in artificial intelligence.",
		"Machine learning models learn patterns from large amounts of data.",
		"Deep learning has produced impressive results in image recognition and natural language processing.",
		"Neural networks are computational models loosely based on how the brain works.",
		"Data preprocessing has a huge impact on model accuracy, as you probably know.",
		"Renting GPUs in the cloud lets individuals train large models these days.",
		"Speech recognition accuracy has improved dramatically over the past few years.",
		"Automatically transcribing a video and turning it into an article is now quite practical.",
		"Large language models are particularly good at summarizing and generating text.",
		"Keep in mind that prompt wording can change output quality quite a bit.",
		"API usage is billed per token, so watch the length of your inputs.",
		"In production, retry and timeout design turns out to matter a lot.",
		"When you depend on external services, decide up front how to behave during outages.",
		"If you have questions about anything so far, please leave a comment.",
		"Alright, let's move on to the next topic.",
	}

	fillerSentences := []string{
		"Um, I got a bit sidetracked there.",
		"So, yeah, that's basically the idea.",
		"Uh, this part is a little tricky.",
		"Okay, so, moving on.",
		"Hmm, how should I put this.",
	}

	return buildTranscript(baseSentences, fillerSentences, targetLength, includeFillers)
}

// buildTranscript assembles sentences until the result lands within ±10% of
// the target rune count.
func buildTranscript(baseSentences, fillerSentences []string, targetLength int, includeFillers bool) string {
	var builder strings.Builder
	currentLength := 0
	sentenceIndex := 0
	fillerIndex := 0

	for {
		var sentence string
		if includeFillers && currentLength%(targetLength/5) < 100 && fillerIndex < len(fillerSentences) {
			sentence = fillerSentences[fillerIndex]
			fillerIndex++
		} else {
			sentence = baseSentences[sentenceIndex%len(baseSentences)]
			sentenceIndex++
		}

		sentenceLength := len([]rune(sentence))
		if currentLength > 0 {
			sentenceLength++ // Account for space
		}
		potentialLength := currentLength + sentenceLength

		// Once past 90% of the target, stop before overshooting 110%
		if currentLength >= int(float64(targetLength)*0.9) {
			if potentialLength > int(float64(targetLength)*1.1) {
				break
			}
		}

		if currentLength > 0 {
			builder.WriteString(" ")
		}

		builder.WriteString(sentence)
		currentLength = len([]rune(builder.String()))

		if currentLength >= targetLength {
			break
		}
	}

	return builder.String()
}
