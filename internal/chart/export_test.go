package chart

var BarData = barData
