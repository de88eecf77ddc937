// Package data 嵌入随程序分发的默认数据文件
//
// //go:embed 只能嵌入当前包目录及其子目录的文件，
// 因此嵌入声明放在 data/ 目录内，由 main 和 cmd 工具通过 embedded.Init(data.FS) 注册。
package data

import "embed"

// FS 以 data/ 目录为根的嵌入文件系统
//
//go:embed sandbox.yaml
var FS embed.FS
